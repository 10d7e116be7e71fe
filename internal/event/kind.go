package event

// Kind is a DOM event type name.
type Kind string

// Event kinds the robot can emit.
const (
	KindClick      Kind = "click"
	KindDblClick   Kind = "dblclick"
	KindAuxClick   Kind = "auxclick"
	KindMouseDown  Kind = "mousedown"
	KindMouseUp    Kind = "mouseup"
	KindMouseMove  Kind = "mousemove"
	KindMouseOver  Kind = "mouseover"
	KindMouseOut   Kind = "mouseout"
	KindMouseEnter Kind = "mouseenter"
	KindMouseLeave Kind = "mouseleave"
	KindWheel      Kind = "wheel"
	KindKeyDown    Kind = "keydown"
	KindKeyUp      Kind = "keyup"
	KindScroll     Kind = "scroll"
	KindInput      Kind = "input"
	KindChange     Kind = "change"
	KindTouchStart Kind = "touchstart"
	KindTouchMove  Kind = "touchmove"
	KindTouchEnd   Kind = "touchend"
)

// Category groups kinds that share an init record and a retention slot.
type Category string

// Event categories.
const (
	CategoryMouse    Category = "mouse"
	CategoryWheel    Category = "wheel"
	CategoryKeyboard Category = "keyboard"
	CategoryUI       Category = "ui"
	CategoryInput    Category = "input"
	CategoryChange   Category = "change"
	CategoryTouch    Category = "touch"
)

var kindCategories = map[Kind]Category{
	KindClick:      CategoryMouse,
	KindDblClick:   CategoryMouse,
	KindAuxClick:   CategoryMouse,
	KindMouseDown:  CategoryMouse,
	KindMouseUp:    CategoryMouse,
	KindMouseMove:  CategoryMouse,
	KindMouseOver:  CategoryMouse,
	KindMouseOut:   CategoryMouse,
	KindMouseEnter: CategoryMouse,
	KindMouseLeave: CategoryMouse,
	KindWheel:      CategoryWheel,
	KindKeyDown:    CategoryKeyboard,
	KindKeyUp:      CategoryKeyboard,
	KindScroll:     CategoryUI,
	KindInput:      CategoryInput,
	KindChange:     CategoryChange,
	KindTouchStart: CategoryTouch,
	KindTouchMove:  CategoryTouch,
	KindTouchEnd:   CategoryTouch,
}

// Category returns the category of k, or "" for an unknown kind.
func (k Kind) Category() Category {
	return kindCategories[k]
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	_, ok := kindCategories[k]
	return ok
}

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	return k, k.Valid()
}

// Kinds returns every known kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindClick, KindDblClick, KindAuxClick,
		KindMouseDown, KindMouseUp, KindMouseMove,
		KindMouseOver, KindMouseOut, KindMouseEnter, KindMouseLeave,
		KindWheel, KindKeyDown, KindKeyUp, KindScroll,
		KindInput, KindChange,
		KindTouchStart, KindTouchMove, KindTouchEnd,
	}
}
