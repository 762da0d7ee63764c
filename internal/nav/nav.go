// Package nav drives the site header: the mobile menu, its dropdowns and
// single-select filter buttons.
package nav

import (
	"fmt"

	"zion-impact-fm/internal/page"
)

const activeClass = "active"

// DefaultBreakpoint is the widest viewport, in CSS pixels, treated as mobile.
const DefaultBreakpoint = 768

// View holds the header regions the controller writes to.
type View struct {
	Toggle    *page.Region
	Menu      *page.Region
	Dropdowns []*page.Region
	Filters   []*page.Region
}

// Controller toggles the mobile menu and collapses dropdowns on small screens.
type Controller struct {
	view       View
	breakpoint int
}

// New creates a navigation controller. A non-positive breakpoint selects
// DefaultBreakpoint.
func New(view View, breakpoint int) *Controller {
	if breakpoint <= 0 {
		breakpoint = DefaultBreakpoint
	}
	return &Controller{view: view, breakpoint: breakpoint}
}

// ToggleMenu flips the active flag on both the toggle and the menu panel.
func (c *Controller) ToggleMenu() {
	c.view.Toggle.ToggleClass(activeClass)
	c.view.Menu.ToggleClass(activeClass)
}

// LinkActivated closes the menu whatever its current state.
func (c *Controller) LinkActivated() {
	c.view.Toggle.RemoveClass(activeClass)
	c.view.Menu.RemoveClass(activeClass)
}

// MenuOpen reports whether the menu panel is open.
func (c *Controller) MenuOpen() bool {
	return c.view.Menu.HasClass(activeClass)
}

// DropdownActivated handles a click on the i-th dropdown toggle. On viewports
// no wider than the breakpoint it expands or collapses the toggle's parent and
// reports true, meaning default navigation must not happen.
func (c *Controller) DropdownActivated(i, viewportWidth int) (bool, error) {
	if i < 0 || i >= len(c.view.Dropdowns) {
		return false, fmt.Errorf("dropdown %d out of range", i)
	}
	if viewportWidth > c.breakpoint {
		return false, nil
	}
	c.view.Dropdowns[i].Parent().ToggleClass(activeClass)
	return true, nil
}

// DropdownExpanded reports whether the i-th dropdown is expanded.
func (c *Controller) DropdownExpanded(i int) bool {
	if i < 0 || i >= len(c.view.Dropdowns) {
		return false
	}
	return c.view.Dropdowns[i].Parent().HasClass(activeClass)
}

// SelectFilter marks the i-th filter button active and clears the others.
func (c *Controller) SelectFilter(i int) error {
	if i < 0 || i >= len(c.view.Filters) {
		return fmt.Errorf("filter %d out of range", i)
	}
	for _, f := range c.view.Filters {
		f.RemoveClass(activeClass)
	}
	c.view.Filters[i].AddClass(activeClass)
	return nil
}
