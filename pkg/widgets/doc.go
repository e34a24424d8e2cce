// Package widgets provides the leaf controls placed inside windows and
// popups: Label, Button, PopupButton, ComboBox, CheckBox, TextBox (with the
// IntBox and FloatBox numeric variants) and Slider.
//
// Every constructor takes the parent first and attaches the new widget to
// it:
//
//	win := window.New(scr, "Settings")
//	win.SetLayout(layout.NewGroupLayout())
//	widgets.NewLabel(win, "Output")
//	widgets.NewCheckBox(win, "Verbose", func(on bool) { verbose = on })
//	b := widgets.NewButton(win, "Apply")
//	b.SetCallback(apply)
//
// Visuals are intentionally plain and are drawn from the theme inherited
// from the parent. Callbacks run synchronously inside the screen's event
// dispatch; they may change the tree, but removals of the calling widget
// should go through Dispose or the router's Defer.
package widgets
