package metrics

import (
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var CollectionTag, _ = tag.NewKey("collection")

var (
	AsksCreated    = stats.Int64("marketplace/asks_created", "Total asks listed", stats.UnitDimensionless)
	AsksRemoved    = stats.Int64("marketplace/asks_removed", "Total asks withdrawn by sellers", stats.UnitDimensionless)
	BidsPlaced     = stats.Int64("marketplace/bids_placed", "Total accepted auction bids", stats.UnitDimensionless)
	BidsRefunded   = stats.Int64("marketplace/bids_refunded", "Total outbid refunds issued", stats.UnitDimensionless)
	SalesFinalized = stats.Int64("marketplace/sales_finalized", "Total settled sales", stats.UnitDimensionless)
	RoyaltiesPaid  = stats.Int64("marketplace/royalties_paid", "Total sales that paid a royalty", stats.UnitDimensionless)
)

var views = []*view.View{
	{Measure: AsksCreated, Aggregation: view.Count(), TagKeys: []tag.Key{CollectionTag}},
	{Measure: AsksRemoved, Aggregation: view.Count(), TagKeys: []tag.Key{CollectionTag}},
	{Measure: BidsPlaced, Aggregation: view.Count(), TagKeys: []tag.Key{CollectionTag}},
	{Measure: BidsRefunded, Aggregation: view.Count(), TagKeys: []tag.Key{CollectionTag}},
	{Measure: SalesFinalized, Aggregation: view.Count(), TagKeys: []tag.Key{CollectionTag}},
	{Measure: RoyaltiesPaid, Aggregation: view.Count(), TagKeys: []tag.Key{CollectionTag}},
}
