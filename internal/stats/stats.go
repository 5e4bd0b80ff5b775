// Package stats derives score-relative-to-par classification counts.
package stats

// Buckets holds the six mutually exclusive classification counts for a
// round. Every recorded hole lands in exactly one bucket.
type Buckets struct {
	EagleOrBetter int `json:"eagle_or_better" yaml:"eagle_or_better"`
	Birdie        int `json:"birdie" yaml:"birdie"`
	Par           int `json:"par" yaml:"par"`
	Bogey         int `json:"bogey" yaml:"bogey"`
	DoubleBogey   int `json:"double_bogey" yaml:"double_bogey"`
	TripleOrWorse int `json:"triple_or_worse" yaml:"triple_or_worse"`
}

// Record classifies one hole. A zero or negative score or par means the
// hole carries no data and is ignored.
func (b *Buckets) Record(score, par int) {
	if score <= 0 || par <= 0 {
		return
	}
	switch diff := score - par; {
	case diff <= -2:
		b.EagleOrBetter++
	case diff == -1:
		b.Birdie++
	case diff == 0:
		b.Par++
	case diff == 1:
		b.Bogey++
	case diff == 2:
		b.DoubleBogey++
	default:
		b.TripleOrWorse++
	}
}

// Holes returns the number of holes recorded across all buckets.
func (b Buckets) Holes() int {
	return b.EagleOrBetter + b.Birdie + b.Par + b.Bogey + b.DoubleBogey + b.TripleOrWorse
}
