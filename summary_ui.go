package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/hauntedpumpkin/common"
	"github.com/milk9111/hauntedpumpkin/leaderboard"
)

// summaryRows is how many leaderboard entries the run summary lists.
const summaryRows = 5

// NewSummaryUI builds the end-of-run panel: the result headline, the top of
// the leaderboard and a button that starts the next run.
func NewSummaryUI(g *Game, score int, res leaderboard.Result, board []leaderboard.Entry, now time.Time) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x10, G: 0x08, B: 0x18, A: 220})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0xd4, G: 0x6a, B: 0x10, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	dim := color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	centered := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	text := func(label string, clr color.Color) *widget.Text {
		return widget.NewText(
			widget.TextOpts.Text(label, &face, clr),
			widget.TextOpts.WidgetOpts(centered),
		)
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/2, common.BaseHeight/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)

	panel.AddChild(text(headline(res), white))
	panel.AddChild(text(fmt.Sprintf("Score %d", score), white))
	for i, e := range board[:min(len(board), summaryRows)] {
		panel.AddChild(text(fmt.Sprintf("%2d. %7d  x%-3d %s", i+1, e.Score, e.Combo, leaderboard.FormatRecordedAt(e, now)), dim))
	}

	again := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Play again", &face, &widget.ButtonTextColor{Idle: white}),
		widget.ButtonOpts.WidgetOpts(centered),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			g.summary = nil
		}),
	)
	panel.AddChild(again)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}

func headline(res leaderboard.Result) string {
	switch {
	case res.IsNewRecord:
		return "New high score!"
	case res.IsTopTen:
		return fmt.Sprintf("Rank #%d", res.Rank)
	default:
		return "Not in the top ten"
	}
}
