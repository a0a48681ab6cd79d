package engine

// ResolveLinks matches link anchors advertised by producing stages against
// the link requests of consuming stages, across the whole graph, and records
// the resulting fan-out declarations on the producers.
//
// Resolution runs once, after every stage is known, because a consumer may
// appear anywhere in the pipeline relative to its producer. Every producer
// advertising an anchor receives the full alias set collected for that
// anchor. An anchor with no consumers emits nothing; a request with no
// producer is a configuration error reported by the graph builder, not here.
func ResolveLinks(stages []*Stage) error {
	aliases := make(map[string][]string)
	for _, s := range stages {
		for _, end := range s.LinkEnd {
			aliases[end.Anchor] = append(aliases[end.Anchor], end.Alias)
		}
	}

	for _, s := range stages {
		for _, anchor := range s.LinkStart {
			matched := aliases[anchor]
			if len(matched) == 0 {
				continue
			}
			if err := s.AddSecondarySink(anchor, matched); err != nil {
				return err
			}
		}
	}
	return nil
}

// AdvertisedAnchors returns the set of anchors exposed by any stage's link
// starts. The graph builder uses it to reject link requests that no
// producer can satisfy.
func AdvertisedAnchors(stages []*Stage) map[string]bool {
	anchors := make(map[string]bool)
	for _, s := range stages {
		for _, anchor := range s.LinkStart {
			anchors[anchor] = true
		}
	}
	return anchors
}
