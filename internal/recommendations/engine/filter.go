package engine

// Filter narrows the catalog to the requested category and splits it into
// rankable plans and price-on-request plans. On-request plans are kept for
// informational display but never scored. Both slices preserve catalog order.
func Filter(plans []Plan, category Category) (rankable []Plan, onRequest []Plan) {
	for _, p := range plans {
		if p.Category != category {
			continue
		}
		if p.Rankable() {
			rankable = append(rankable, p)
			continue
		}
		onRequest = append(onRequest, p)
	}
	return rankable, onRequest
}
