package domain

type GatherEventKind string

const (
	GatherEventItem     GatherEventKind = "item_discovered"
	GatherEventComplete GatherEventKind = "gather_complete"
)

type GatherEvent struct {
	Kind     GatherEventKind
	Instance RawInstance
	// Expected is only set on GatherEventComplete.
	Expected int
}

func ItemDiscovered(instance RawInstance) GatherEvent {
	return GatherEvent{Kind: GatherEventItem, Instance: instance}
}

func GatherComplete(expected int) GatherEvent {
	return GatherEvent{Kind: GatherEventComplete, Expected: expected}
}
