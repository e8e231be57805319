package live

// Batch records the tables written during a transaction so they can be
// published once it commits.
type Batch struct {
	seen  map[Table]struct{}
	order []Table
}

func NewBatch() *Batch {
	return &Batch{seen: make(map[Table]struct{})}
}

func (b *Batch) Touch(t Table) {
	if _, ok := b.seen[t]; ok {
		return
	}
	b.seen[t] = struct{}{}
	b.order = append(b.order, t)
}

// Tables returns the touched tables in first-touch order.
func (b *Batch) Tables() []Table {
	return append([]Table(nil), b.order...)
}
