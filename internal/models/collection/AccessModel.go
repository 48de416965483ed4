package collection

// AccessModel is how the viewer treats a data source once it has fetched its root document.
type AccessModel string

const (
	StaticView                     AccessModel = "staticView"
	StaticViewWithPeriodicUpdates  AccessModel = "staticViewWithPeriodicUpdates"
	ForwardIterableCollection      AccessModel = "fwIterableCollection"
	DenseCollection                AccessModel = "denseCollection"
	SparseCollection               AccessModel = "sparseCollection"
	SparseCollectionWithPagination AccessModel = "sparseCollectionWithPagination"
)

// Descriptor holds the top-level keys the viewer inspects to choose an access model.
type Descriptor struct {
	Iterable bool
	Expires  bool
	HasTotal bool
	HasItems bool
	HasPages bool
}

// Classify mirrors the viewer's decision. Note that the viewer treats an expiring document as a plain static
// view and a non-expiring one as periodically updated.
func Classify(d Descriptor) AccessModel {
	switch {
	case !d.Iterable && d.Expires:
		return StaticView
	case !d.Iterable:
		return StaticViewWithPeriodicUpdates
	case !d.HasTotal:
		return ForwardIterableCollection
	case !d.HasItems:
		return DenseCollection
	case d.HasPages:
		return SparseCollectionWithPagination
	default:
		return SparseCollection
	}
}

// Describe returns the descriptor of a cursor document.
func (c *Cursor) Describe() Descriptor {
	return Descriptor{
		Iterable: true,
		HasTotal: c.Total != nil && *c.Total != 0,
		HasPages: c.Pages != nil && *c.Pages != 0,
	}
}
