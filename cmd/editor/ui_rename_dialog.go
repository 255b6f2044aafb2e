package main

import (
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

type layerRenameDialog struct {
	Overlay *widget.Container
	Open    func(idx int, current string)
}

func newLayerRenameDialog(theme *widget.Theme, fontFace *text.Face, onLayerRenamed func(layer int, name string)) *layerRenameDialog {
	renameIdx := -1

	overlay := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(1, 1),
		),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{0, 0, 0, 160})),
	)
	overlay.GetWidget().Visibility = widget.Visibility_Hide

	closeDialog := func() {
		overlay.GetWidget().Visibility = widget.Visibility_Hide
		renameIdx = -1
	}
	submit := func(name string) {
		name = strings.TrimSpace(name)
		if renameIdx >= 0 && onLayerRenamed != nil && name != "" {
			onLayerRenamed(renameIdx, name)
		}
		closeDialog()
	}

	dialog := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(320, 140),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{220, 220, 220, 255})),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)
	dialog.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
	}

	nameInput := newTextInput(fontFace, 260,
		widget.TextInputOpts.SubmitOnEnter(true),
		widget.TextInputOpts.SubmitHandler(func(args *widget.TextInputChangedEventArgs) {
			submit(args.InputText)
		}),
	)

	buttonsRow := newRow(8)
	buttonsRow.AddChild(newButton(theme, fontFace, "OK", func() { submit(nameInput.GetText()) }))
	buttonsRow.AddChild(newButton(theme, fontFace, "Cancel", closeDialog))

	dialog.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("Rename layer", fontFace, &widget.LabelColor{Idle: color.Black, Disabled: color.Gray{Y: 140}}),
	))
	dialog.AddChild(nameInput)
	dialog.AddChild(buttonsRow)
	overlay.AddChild(dialog)

	open := func(idx int, current string) {
		renameIdx = idx
		nameInput.SetText(current)
		nameInput.Focus(true)
		overlay.GetWidget().Visibility = widget.Visibility_Show
	}

	return &layerRenameDialog{Overlay: overlay, Open: open}
}
