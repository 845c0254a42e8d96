package ui

import (
	"fmt"

	"github.com/hubastard/canopy/engine/colors"
)

// UserInterface is the scoped builder handed to Interface.Show. Colors are
// given as hex strings; the first bad color or id is kept and returned by
// Show, and the offending element is skipped.
type UserInterface struct {
	iface *Interface
	err   error
}

// Interface returns the interface being built.
func (ui *UserInterface) Interface() *Interface { return ui.iface }

// Err returns the first error recorded so far.
func (ui *UserInterface) Err() error { return ui.err }

func (ui *UserInterface) fail(err error) ID {
	if ui.err == nil {
		ui.err = err
	}
	return NoID
}

func (ui *UserInterface) color(hex string) (colors.Color, error) {
	c, err := colors.ParseHex(hex)
	if err != nil {
		return colors.Color{}, fmt.Errorf("element color: %w", err)
	}
	return c, nil
}

func (ui *UserInterface) place(el Element, id []ID) ID {
	if len(id) == 0 {
		return ui.iface.Add(el)
	}
	got, err := ui.iface.AddWithID(el, id[0])
	if err != nil {
		return ui.fail(err)
	}
	return got
}

// AddPanel adds a background panel. An explicit id may be given; a panel
// placed at TitleBarID acts as the window's drag handle.
func (ui *UserInterface) AddPanel(position [2]float32, hex string, scale [2]float32, texture string, id ...ID) ID {
	c, err := ui.color(hex)
	if err != nil {
		return ui.fail(err)
	}
	return ui.place(Panel(position, scale, c).Texture(texture), id)
}

// AddButton adds a button whose click runs onClick locally.
func (ui *UserInterface) AddButton(position [2]float32, hex string, scale [2]float32, onClick func(), texture string) ID {
	c, err := ui.color(hex)
	if err != nil {
		return ui.fail(err)
	}
	return ui.place(Button(position, scale, c, onClick).Texture(texture), nil)
}

// AddPropButton adds a button whose click emits a window-level event.
func (ui *UserInterface) AddPropButton(position [2]float32, hex string, scale [2]float32, emit func() UiEvent, texture string) ID {
	c, err := ui.color(hex)
	if err != nil {
		return ui.fail(err)
	}
	return ui.place(PropButton(position, scale, c, emit).Texture(texture), nil)
}

func (ui *UserInterface) AddLabel(text string, position, scale [2]float32, hex string) ID {
	c, err := ui.color(hex)
	if err != nil {
		return ui.fail(err)
	}
	return ui.place(Label(text, position, scale, c), nil)
}

// AddIcon adds a textured icon sized in pixels.
func (ui *UserInterface) AddIcon(position [2]float32, hex string, pixelScale [2]float32, texture string) ID {
	c, err := ui.color(hex)
	if err != nil {
		return ui.fail(err)
	}
	return ui.place(Icon(position, pixelScale, c, texture), nil)
}

func (ui *UserInterface) AddTextBox(placeholder string, position, scale [2]float32, hex, textHex string) ID {
	c, err := ui.color(hex)
	if err != nil {
		return ui.fail(err)
	}
	tc, err := ui.color(textHex)
	if err != nil {
		return ui.fail(err)
	}
	return ui.place(TextBox(placeholder, position, scale, c, tc), nil)
}
