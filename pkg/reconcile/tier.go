package reconcile

import (
	"maprecon/pkg/dataset"
)

// TierName identifies one matching strategy in the fallback cascade.
type TierName string

const (
	// TierPrimary joins on (HierarchyPath, tag) exactly.
	TierPrimary TierName = "primary"

	// TierParentChild joins on (ParentChildKey, tag). Recovers matches when
	// an ancestor shifted without the local parent/child context changing.
	TierParentChild TierName = "parent-child"

	// TierLooseTag joins purely on tag, only when the tag occurs exactly
	// once in both datasets as a whole.
	TierLooseTag TierName = "loose-tag"
)

// tier is one pure matching strategy. Tiers hold no state; composing them
// first-success-wins keeps the whole procedure deterministic.
type tier interface {
	// Name returns the tier name.
	Name() TierName

	// ChangedLabel returns the Changed label this tier's matches carry.
	ChangedLabel() ChangeType

	// Match attempts to resolve the test row against the source dataset,
	// returning the matched source row index.
	Match(row dataset.Row, source, test *dataset.Dataset) (int, bool)
}

// primaryTier is the general case and covers the overwhelming majority of
// rows when tree shape is stable.
type primaryTier struct{}

func (primaryTier) Name() TierName           { return TierPrimary }
func (primaryTier) ChangedLabel() ChangeType { return ChangeTypeChanged }

func (primaryTier) Match(row dataset.Row, source, _ *dataset.Dataset) (int, bool) {
	key, ok := row.Key()
	if !ok {
		return 0, false
	}
	return source.LookupIndex(key)
}

// parentChildTier recovers rows that moved one level up or down but kept
// their immediate context.
type parentChildTier struct{}

func (parentChildTier) Name() TierName           { return TierParentChild }
func (parentChildTier) ChangedLabel() ChangeType { return ChangeTypeChangedFallback }

func (parentChildTier) Match(row dataset.Row, source, _ *dataset.Dataset) (int, bool) {
	key, ok := row.ParentChildKey()
	if !ok || key.Path == "" {
		return 0, false
	}
	return source.ParentChildIndex(key)
}

// looseTagTier recovers matches with no structural correlation at all. It
// must never fire when the tag is ambiguous (occurs 0 or >=2 times) in either
// dataset, to avoid spurious pairings.
type looseTagTier struct{}

func (looseTagTier) Name() TierName           { return TierLooseTag }
func (looseTagTier) ChangedLabel() ChangeType { return ChangeTypeChangedLoose }

func (looseTagTier) Match(row dataset.Row, source, test *dataset.Dataset) (int, bool) {
	tag := row.Tag()
	if tag == "" || test.TagCount(tag) != 1 {
		return 0, false
	}
	return source.UniqueTagIndex(tag)
}

// defaultTiers returns the cascade in its strict order.
func defaultTiers() []tier {
	return []tier{primaryTier{}, parentChildTier{}, looseTagTier{}}
}
