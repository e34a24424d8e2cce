// Package theme holds the shared, read-only style object consulted by
// widgets during layout and drawing.
//
// A Theme is created once by the host (DefaultTheme or Load) and handed to
// the root of a widget tree; widgets inherit their parent's theme when they
// are attached. Widgets never mutate a Theme.
package theme

import "github.com/go-drift/trellis/pkg/graphics"

// ThemeData contains all sizing and color configuration for a widget tree.
type ThemeData struct {
	// Font faces, as registered with the rendering backend.
	FontNormal string `yaml:"font_normal"`
	FontBold   string `yaml:"font_bold"`
	FontIcons  string `yaml:"font_icons"`

	StandardFontSize     int `yaml:"standard_font_size"`
	ButtonFontSize       int `yaml:"button_font_size"`
	TextBoxFontSize      int `yaml:"text_box_font_size"`
	WindowCornerRadius   int `yaml:"window_corner_radius"`
	WindowHeaderHeight   int `yaml:"window_header_height"`
	WindowDropShadowSize int `yaml:"window_drop_shadow_size"`
	ButtonCornerRadius   int `yaml:"button_corner_radius"`

	// WindowDraggable is the default for windows that don't override it.
	WindowDraggable bool `yaml:"window_draggable"`
	// WindowCollapsible is the default for windows that don't override it.
	WindowCollapsible bool `yaml:"window_collapsible"`

	DropShadow        graphics.Color `yaml:"drop_shadow"`
	Transparent       graphics.Color `yaml:"transparent"`
	BorderDark        graphics.Color `yaml:"border_dark"`
	BorderLight       graphics.Color `yaml:"border_light"`
	BorderMedium      graphics.Color `yaml:"border_medium"`
	TextColor         graphics.Color `yaml:"text_color"`
	DisabledTextColor graphics.Color `yaml:"disabled_text_color"`
	TextColorShadow   graphics.Color `yaml:"text_color_shadow"`
	IconColor         graphics.Color `yaml:"icon_color"`

	ButtonGradientTopFocused   graphics.Color `yaml:"button_gradient_top_focused"`
	ButtonGradientBotFocused   graphics.Color `yaml:"button_gradient_bot_focused"`
	ButtonGradientTopUnfocused graphics.Color `yaml:"button_gradient_top_unfocused"`
	ButtonGradientBotUnfocused graphics.Color `yaml:"button_gradient_bot_unfocused"`
	ButtonGradientTopPushed    graphics.Color `yaml:"button_gradient_top_pushed"`
	ButtonGradientBotPushed    graphics.Color `yaml:"button_gradient_bot_pushed"`

	WindowFillUnfocused     graphics.Color `yaml:"window_fill_unfocused"`
	WindowFillFocused       graphics.Color `yaml:"window_fill_focused"`
	WindowTitleUnfocused    graphics.Color `yaml:"window_title_unfocused"`
	WindowTitleFocused      graphics.Color `yaml:"window_title_focused"`
	WindowHeaderGradientTop graphics.Color `yaml:"window_header_gradient_top"`
	WindowHeaderGradientBot graphics.Color `yaml:"window_header_gradient_bot"`
	WindowHeaderSepTop      graphics.Color `yaml:"window_header_sep_top"`
	WindowHeaderSepBot      graphics.Color `yaml:"window_header_sep_bot"`
	WindowPopup             graphics.Color `yaml:"window_popup"`
	WindowPopupTransparent  graphics.Color `yaml:"window_popup_transparent"`

	TooltipBackground graphics.Color `yaml:"tooltip_background"`
	TooltipText       graphics.Color `yaml:"tooltip_text"`
}

// DefaultTheme returns the default dark theme.
func DefaultTheme() *ThemeData {
	return &ThemeData{
		FontNormal: graphics.FontSans,
		FontBold:   graphics.FontSansBold,
		FontIcons:  "icons",

		StandardFontSize:     16,
		ButtonFontSize:       20,
		TextBoxFontSize:      20,
		WindowCornerRadius:   2,
		WindowHeaderHeight:   30,
		WindowDropShadowSize: 10,
		ButtonCornerRadius:   2,

		WindowDraggable:   true,
		WindowCollapsible: false,

		DropShadow:        graphics.Gray(0, 128),
		Transparent:       graphics.Gray(0, 0),
		BorderDark:        graphics.Gray(29, 255),
		BorderLight:       graphics.Gray(92, 255),
		BorderMedium:      graphics.Gray(35, 255),
		TextColor:         graphics.Gray(255, 160),
		DisabledTextColor: graphics.Gray(255, 80),
		TextColorShadow:   graphics.Gray(0, 160),
		IconColor:         graphics.Gray(255, 160),

		ButtonGradientTopFocused:   graphics.Gray(64, 255),
		ButtonGradientBotFocused:   graphics.Gray(48, 255),
		ButtonGradientTopUnfocused: graphics.Gray(74, 255),
		ButtonGradientBotUnfocused: graphics.Gray(58, 255),
		ButtonGradientTopPushed:    graphics.Gray(41, 255),
		ButtonGradientBotPushed:    graphics.Gray(29, 255),

		WindowFillUnfocused:     graphics.Gray(43, 230),
		WindowFillFocused:       graphics.Gray(45, 230),
		WindowTitleUnfocused:    graphics.Gray(220, 160),
		WindowTitleFocused:      graphics.Gray(255, 190),
		WindowHeaderGradientTop: graphics.Gray(74, 255),
		WindowHeaderGradientBot: graphics.Gray(58, 255),
		WindowHeaderSepTop:      graphics.Gray(92, 255),
		WindowHeaderSepBot:      graphics.Gray(29, 255),
		WindowPopup:             graphics.Gray(50, 255),
		WindowPopupTransparent:  graphics.Gray(50, 0),

		TooltipBackground: graphics.Gray(0, 255),
		TooltipText:       graphics.Gray(255, 255),
	}
}

// Copy returns a shallow copy of the theme.
func (t *ThemeData) Copy() *ThemeData {
	c := *t
	return &c
}
