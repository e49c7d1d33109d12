package store

import (
	"github.com/asaskevich/EventBus"

	"github.com/AhmadEkramy/elitesupps/internal/domain"
)

// Change feed topics. Subscribers receive the full snapshot of the
// collection after every mutation, last write wins, no incremental merge.
const (
	TopicProductsChanged = "store:products:changed"
	TopicOffersChanged   = "store:offers:changed"
	TopicCouponsChanged  = "store:coupons:changed"
	TopicOrdersChanged   = "store:orders:changed"
)

// Feed is the observer hub behind the live-subscription surface. Handlers
// run asynchronously so a slow subscriber never blocks a store mutation.
type Feed struct {
	bus EventBus.Bus
}

func NewFeed() *Feed {
	return &Feed{bus: EventBus.New()}
}

func (f *Feed) OnProductsChange(fn func([]domain.Product)) error {
	return f.bus.SubscribeAsync(TopicProductsChanged, fn, false)
}

func (f *Feed) OnOffersChange(fn func([]domain.Offer)) error {
	return f.bus.SubscribeAsync(TopicOffersChanged, fn, false)
}

func (f *Feed) OnCouponsChange(fn func([]domain.Coupon)) error {
	return f.bus.SubscribeAsync(TopicCouponsChanged, fn, false)
}

func (f *Feed) OnOrdersChange(fn func([]domain.Order)) error {
	return f.bus.SubscribeAsync(TopicOrdersChanged, fn, false)
}

// Unsubscribe detaches a previously registered handler, used on view teardown
func (f *Feed) Unsubscribe(topic string, fn interface{}) error {
	return f.bus.Unsubscribe(topic, fn)
}

func (f *Feed) publishProducts(products []domain.Product) {
	f.bus.Publish(TopicProductsChanged, products)
}

func (f *Feed) publishOffers(offers []domain.Offer) {
	f.bus.Publish(TopicOffersChanged, offers)
}

func (f *Feed) publishCoupons(coupons []domain.Coupon) {
	f.bus.Publish(TopicCouponsChanged, coupons)
}

func (f *Feed) publishOrders(orders []domain.Order) {
	f.bus.Publish(TopicOrdersChanged, orders)
}
