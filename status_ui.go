package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/warehouse/asset"
	"github.com/milk9111/warehouse/levels"
)

var statusTextColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// newFailureUI builds the centered panel shown once the asset pack failed.
// Quit asks the game loop to terminate.
func newFailureUI(width, height int, wh *levels.Warehouse, quit func()) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x20, G: 0x00, B: 0x00, A: 210})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x44, G: 0x33, B: 0x33, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	title := widget.NewText(
		widget.TextOpts.Text("Asset pack failed to load", &face, statusTextColor),
		widget.TextOpts.WidgetOpts(center),
	)
	reason := widget.NewText(
		widget.TextOpts.Text(failureSummary(wh), &face, statusTextColor),
		widget.TextOpts.WidgetOpts(center),
	)
	quitBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Quit", &face, &widget.ButtonTextColor{Idle: statusTextColor}),
		widget.ButtonOpts.WidgetOpts(center),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
			quit()
		}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width/2, height/4),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(reason)
	panel.AddChild(quitBtn)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

// failureSummary names the failed primary, or else the first failed entry,
// and its cause.
func failureSummary(wh *levels.Warehouse) string {
	reg := wh.Registry()
	name, primary := wh.Pack().Primary()
	entries := append([]asset.PackEntry{{Name: name, Handle: primary}}, wh.Pack().Entries()...)
	for _, e := range entries {
		if reg.RecursiveState(e.Handle) != asset.Failed {
			continue
		}
		if err := reg.Err(e.Handle); err != nil {
			return fmt.Sprintf("%s: %v", e.Name, err)
		}
		return fmt.Sprintf("%s: a dependency failed", e.Name)
	}
	return "unknown cause"
}
