package widgets

import (
	"math"
	"strings"

	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/serialize"
	"github.com/go-drift/trellis/pkg/widget"
)

// ButtonFlags select how a button reacts to presses.
type ButtonFlags int

const (
	// ButtonNormal releases when the pointer is released.
	ButtonNormal ButtonFlags = 1 << iota
	// ButtonRadio stays pushed and releases the other radio buttons of its
	// group, or of its parent when it has no explicit group.
	ButtonRadio
	// ButtonToggle flips between pushed and released on every press.
	ButtonToggle
	// ButtonPopup releases sibling popup buttons when pushed.
	ButtonPopup
)

func (f ButtonFlags) String() string {
	var parts []string
	for _, n := range []struct {
		f    ButtonFlags
		name string
	}{{ButtonNormal, "normal"}, {ButtonRadio, "radio"}, {ButtonToggle, "toggle"}, {ButtonPopup, "popup"}} {
		if f&n.f != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Button is a push button with a caption.
//
// Callback runs when a press is released over the button. ChangeCallback
// runs whenever the pushed state changes, which is how toggle and radio
// buttons report their state.
type Button struct {
	widget.Base

	caption        string
	pushed         bool
	flags          ButtonFlags
	background     graphics.Color
	textColor      graphics.Color
	group          []*Button
	callback       func()
	changeCallback func(pushed bool)
}

// NewButton creates a normal push button attached to parent.
func NewButton(parent widget.Widget, caption string) *Button {
	b := &Button{caption: caption, flags: ButtonNormal}
	b.Init(b, parent)
	b.SetCursor(widget.CursorHand)
	return b
}

func (b *Button) Caption() string { return b.caption }

func (b *Button) SetCaption(c string) {
	b.caption = c
	b.MarkLayoutDirty()
}

func (b *Button) Pushed() bool { return b.pushed }

// SetPushed sets the pushed state without running callbacks.
func (b *Button) SetPushed(p bool) { b.pushed = p }

func (b *Button) Flags() ButtonFlags { return b.flags }
func (b *Button) SetFlags(f ButtonFlags) { b.flags = f }

// BackgroundColor tints the button. The zero color leaves it untinted.
func (b *Button) BackgroundColor() graphics.Color { return b.background }
func (b *Button) SetBackgroundColor(c graphics.Color) { b.background = c }

// TextColor overrides the theme's text color when non-zero.
func (b *Button) TextColor() graphics.Color { return b.textColor }
func (b *Button) SetTextColor(c graphics.Color) { b.textColor = c }

func (b *Button) SetCallback(fn func()) { b.callback = fn }
func (b *Button) Callback() func() { return b.callback }
func (b *Button) SetChangeCallback(fn func(pushed bool)) { b.changeCallback = fn }
func (b *Button) ChangeCallback() func(pushed bool) { return b.changeCallback }

// ButtonGroup returns the explicit radio group, which may be empty.
func (b *Button) ButtonGroup() []*Button { return b.group }

// SetButtonGroup sets the radio buttons released together with b. The
// slice is shared, so the same group can be handed to every member.
func (b *Button) SetButtonGroup(g []*Button) { b.group = g }

func (b *Button) fontSize() int {
	if b.HasFontSize() {
		return b.FontSize()
	}
	return themeOf(b.Node()).ButtonFontSize
}

func (b *Button) PreferredSize(ctx graphics.Canvas) graphics.Point {
	fs := b.fontSize()
	tw := textWidth(ctx, graphics.FontSansBold, fs, b.caption)
	return graphics.Pt(int(math.Ceil(tw))+20, fs+10)
}

// radioPeers returns the buttons released when b is pushed as a radio
// button.
func (b *Button) radioPeers() []*Button {
	if len(b.group) > 0 {
		return b.group
	}
	var peers []*Button
	if p := b.Parent(); p != nil {
		for _, c := range p.Node().Children() {
			if peer := asButton(c); peer != nil {
				peers = append(peers, peer)
			}
		}
	}
	return peers
}

// asButton returns the Button embedded in w, if any.
func asButton(w widget.Widget) *Button {
	switch v := w.(type) {
	case *Button:
		return v
	case *PopupButton:
		return &v.Button
	case *ComboBox:
		return &v.Button
	}
	return nil
}

// popupSyncer is implemented by buttons that own a popup.
type popupSyncer interface {
	syncPopup()
}

func (b *Button) releasePeers(mask ButtonFlags, peers []*Button) {
	for _, peer := range peers {
		if peer != b && peer.flags&mask != 0 && peer.pushed {
			peer.pushed = false
			if s, ok := peer.Self().(popupSyncer); ok {
				s.syncPopup()
			}
			fireChange(peer.changeCallback, false)
		}
	}
}

// MouseButtonEvent implements the push, toggle and radio behaviors. It
// consumes every primary button event while the button is enabled.
func (b *Button) MouseButtonEvent(p graphics.Point, button widget.MouseButton, down bool, mods widget.ModifierKey) bool {
	b.Base.MouseButtonEvent(p, button, down, mods)
	if button != widget.MouseLeft || !b.Enabled() {
		return false
	}
	before := b.pushed
	if down {
		if b.flags&ButtonRadio != 0 {
			b.releasePeers(ButtonRadio, b.radioPeers())
		}
		if b.flags&ButtonPopup != 0 {
			var siblings []*Button
			if parent := b.Parent(); parent != nil {
				for _, c := range parent.Node().Children() {
					if s := asButton(c); s != nil {
						siblings = append(siblings, s)
					}
				}
			}
			b.releasePeers(ButtonPopup, siblings)
		}
		if b.flags&ButtonToggle != 0 {
			b.pushed = !b.pushed
		} else {
			b.pushed = true
		}
	} else if b.pushed {
		if b.Contains(p) && b.callback != nil {
			b.callback()
		}
		if b.flags&ButtonNormal != 0 {
			b.pushed = false
		}
	}
	if before != b.pushed {
		fireChange(b.changeCallback, b.pushed)
	}
	return true
}

func (b *Button) Draw(ctx graphics.Canvas) {
	b.Base.Draw(ctx)
	th := themeOf(b.Node())
	x, y, w, h := origin(b.Node())
	cr := float64(th.ButtonCornerRadius)

	top, bot := th.ButtonGradientTopUnfocused, th.ButtonGradientBotUnfocused
	switch {
	case b.pushed:
		top, bot = th.ButtonGradientTopPushed, th.ButtonGradientBotPushed
	case b.MouseFocus() && b.Enabled():
		top, bot = th.ButtonGradientTopFocused, th.ButtonGradientBotFocused
	}
	ctx.BeginPath()
	ctx.RoundedRect(x+1, y+1, w-2, h-2, cr-1)
	if b.background.Alpha() != 0 {
		ctx.FillColor(b.background)
		ctx.Fill()
	}
	ctx.FillPaint(ctx.LinearGradient(x, y, x, y+h, top, bot))
	ctx.Fill()

	ctx.BeginPath()
	ctx.StrokeWidth(1)
	ctx.RoundedRect(x+0.5, y+0.5, w-1, h-1, cr)
	if b.pushed {
		ctx.StrokeColor(th.BorderDark)
	} else {
		ctx.StrokeColor(th.BorderLight)
	}
	ctx.Stroke()

	color := th.TextColor
	if b.textColor.Alpha() != 0 {
		color = b.textColor
	}
	if !b.Enabled() {
		color = th.DisabledTextColor
	}
	ctx.FontSize(float64(b.fontSize()))
	ctx.FontFace(graphics.FontSansBold)
	ctx.TextAlign(graphics.AlignCenter | graphics.AlignMiddle)
	ctx.FillColor(th.TextColorShadow)
	ctx.Text(x+w/2, y+h/2, b.caption)
	ctx.FillColor(color)
	ctx.Text(x+w/2, y+h/2-1, b.caption)
}

func (b *Button) Save(r *serialize.Record) {
	b.Base.Save(r)
	r.SetString("caption", b.caption)
	r.SetBool("pushed", b.pushed)
	r.SetInt("flags", int(b.flags))
}

func (b *Button) Load(r *serialize.Record) error {
	if err := b.Base.Load(r); err != nil {
		return err
	}
	flags := int(b.flags)
	for _, err := range []error{
		r.LoadString("caption", &b.caption),
		r.LoadBool("pushed", &b.pushed),
		r.LoadInt("flags", &flags),
	} {
		if err != nil {
			return err
		}
	}
	b.flags = ButtonFlags(flags)
	return nil
}
