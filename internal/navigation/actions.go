package navigation

import (
	"fmt"

	"github.com/zjrosen/spherenav/internal/sphere"
)

// Action is one of the closed set of transitions the machine accepts.
type Action interface {
	// Name is the stable identifier used in logs, metrics and replay scripts.
	Name() string
	isAction()
}

type (
	// ToUniverse shows the universe view.
	ToUniverse struct{}
	// ToMap shows the map view.
	ToMap struct{}
	// ToDomain opens a sphere.
	ToDomain struct{ Domain sphere.DomainID }
	// ToSection opens a section inside a sphere.
	ToSection struct {
		Domain  sphere.DomainID
		Section sphere.SectionID
	}
	// OpenOverlay shows the overlay over the current view.
	OpenOverlay struct{}
	// CloseOverlay hides the overlay and restores the view it covered.
	CloseOverlay struct{}
	// GoBack restores the previous history entry.
	GoBack struct{}
	// Reset returns to the initial state and drops history.
	Reset struct{}
)

// Action names.
const (
	NameToUniverse   = "to_universe"
	NameToMap        = "to_map"
	NameToDomain     = "to_domain"
	NameToSection    = "to_section"
	NameOpenOverlay  = "open_overlay"
	NameCloseOverlay = "close_overlay"
	NameGoBack       = "go_back"
	NameReset        = "reset"
)

func (ToUniverse) Name() string   { return NameToUniverse }
func (ToMap) Name() string        { return NameToMap }
func (ToDomain) Name() string     { return NameToDomain }
func (ToSection) Name() string    { return NameToSection }
func (OpenOverlay) Name() string  { return NameOpenOverlay }
func (CloseOverlay) Name() string { return NameCloseOverlay }
func (GoBack) Name() string       { return NameGoBack }
func (Reset) Name() string        { return NameReset }

func (ToUniverse) isAction()   {}
func (ToMap) isAction()        {}
func (ToDomain) isAction()     {}
func (ToSection) isAction()    {}
func (OpenOverlay) isAction()  {}
func (CloseOverlay) isAction() {}
func (GoBack) isAction()       {}
func (Reset) isAction()        {}

func (a ToDomain) String() string  { return fmt.Sprintf("%s(%s)", NameToDomain, a.Domain) }
func (a ToSection) String() string { return fmt.Sprintf("%s(%s,%s)", NameToSection, a.Domain, a.Section) }

// ParseAction builds an action from its name and arguments, as written in
// replay scripts.
func ParseAction(name string, domain sphere.DomainID, section sphere.SectionID) (Action, error) {
	switch name {
	case NameToUniverse:
		return ToUniverse{}, nil
	case NameToMap:
		return ToMap{}, nil
	case NameToDomain:
		return ToDomain{Domain: domain}, nil
	case NameToSection:
		return ToSection{Domain: domain, Section: section}, nil
	case NameOpenOverlay:
		return OpenOverlay{}, nil
	case NameCloseOverlay:
		return CloseOverlay{}, nil
	case NameGoBack:
		return GoBack{}, nil
	case NameReset:
		return Reset{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
}
