package test

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/kakigori/storefront/internal/domain/model"
)

const asciiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomASCIIString returns a pseudo-random ASCII string within the provided bounds.
func RandomASCIIString(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	length := minLen + randomIntn(maxLen-minLen+1)
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = asciiLetters[randomIntn(len(asciiLetters))]
	}
	return string(buf)
}

// RandomOrders returns n orders with distinct ids and numbers spread over
// every status.
func RandomOrders(n int) []model.Order {
	orders := make([]model.Order, 0, n)
	for i, number := range randomPerm(n) {
		orders = append(orders, model.Order{
			ID:          fmt.Sprintf("order-%d", i),
			MenuItemID:  RandomASCIIString(4, 8),
			OrderNumber: number + 1,
			Status:      model.Statuses[randomIntn(len(model.Statuses))],
		})
	}
	return orders
}

// Shuffled returns a shuffled copy of orders.
func Shuffled(orders []model.Order) []model.Order {
	out := append([]model.Order(nil), orders...)
	rngMu.Lock()
	defer rngMu.Unlock()
	rng.Shuffle(len(out), func(a, b int) { out[a], out[b] = out[b], out[a] })
	return out
}

func randomIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}

func randomPerm(n int) []int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Perm(n)
}
