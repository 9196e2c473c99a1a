package board

import (
	"sort"

	"github.com/kakigori/storefront/internal/domain/model"
)

// Grouped holds orders bucketed by status, each ascending by ticket number.
type Grouped map[model.OrderStatus][]model.Order

// Group buckets orders by status. Orders with an unknown status are dropped.
// The result does not depend on input order.
func Group(orders []model.Order) Grouped {
	grouped := make(Grouped, len(model.Statuses))
	for _, s := range model.Statuses {
		grouped[s] = []model.Order{}
	}
	for _, o := range orders {
		if _, ok := grouped[o.Status]; !ok {
			continue
		}
		grouped[o.Status] = append(grouped[o.Status], o)
	}
	for _, bucket := range grouped {
		sortByNumber(bucket)
	}
	return grouped
}

// IDs returns the ids of the orders in status.
func (g Grouped) IDs(status model.OrderStatus) []string {
	ids := make([]string, 0, len(g[status]))
	for _, o := range g[status] {
		ids = append(ids, o.ID)
	}
	return ids
}

func sortByNumber(orders []model.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].OrderNumber != orders[j].OrderNumber {
			return orders[i].OrderNumber < orders[j].OrderNumber
		}
		return orders[i].ID < orders[j].ID
	})
}
