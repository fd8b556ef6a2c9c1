package main

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"

	"github.com/milk9111/hauntedpumpkin/achievement"
	"github.com/milk9111/hauntedpumpkin/boss"
	"github.com/milk9111/hauntedpumpkin/combo"
	"github.com/milk9111/hauntedpumpkin/common"
	"github.com/milk9111/hauntedpumpkin/event"
	"github.com/milk9111/hauntedpumpkin/session"
)

const (
	// pixelsPerUnit maps ground-plane units to screen pixels.
	pixelsPerUnit = 48
	arenaHalf     = 6.0
	playerSpeed   = 4.0
	feedSize      = 6
)

type Game struct {
	frames int
	debug  bool
	logger *zap.Logger

	sess   *session.Session
	input  Input
	events *event.Queue
	feed   []string

	player   cp.Vector
	comboBar float64
	showHelp bool

	pixel   *ebiten.Image
	summary *ebitenui.UI
}

func NewGame(sess *session.Session, debug bool, logger *zap.Logger) *Game {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &Game{
		debug:    debug,
		logger:   logger,
		sess:     sess,
		events:   event.Record(sess.Bus()),
		pixel:    pixel,
		showHelp: true,
	}
}

func (g *Game) Update() error {
	g.frames++

	if g.summary != nil {
		g.summary.Update()
		return nil
	}

	g.input.Update()
	dt := 1 / float64(ebiten.TPS())

	move := cp.Vector{X: g.input.MoveX, Y: g.input.MoveY}
	g.player = g.player.Add(move.Mult(playerSpeed * dt))
	g.player.X = common.Clamp(g.player.X, -arenaHalf, arenaHalf)
	g.player.Y = common.Clamp(g.player.Y, -arenaHalf, arenaHalf)

	if g.input.ToggleHelp {
		g.showHelp = !g.showHelp
	}
	if g.input.Collect {
		g.sess.Collect()
	}
	if g.input.Damage {
		g.sess.TakeDamage()
	}
	if g.input.RoundDone {
		g.sess.CompleteRound()
	}
	if g.input.HitBoss {
		g.sess.HitBoss(1)
	}
	if g.input.FinishRun {
		score := g.sess.Score()
		res := g.sess.Finish()
		g.feed = nil
		g.summary = NewSummaryUI(g, score, res, g.sess.Leaderboard().Leaderboard(), time.Now())
		return nil
	}

	g.sess.Update(dt, g.player)

	for _, evt := range g.events.Drain() {
		if line, ok := describe(evt, g.debug); ok {
			g.feed = append(g.feed, line)
		}
	}
	if len(g.feed) > feedSize {
		g.feed = g.feed[len(g.feed)-feedSize:]
	}

	target := 0.0
	if g.sess.Combo().Active() {
		target = g.sess.Combo().TimeRemaining() / combo.Window
	}
	g.comboBar = common.Lerp(g.comboBar, target, 0.25)
	return nil
}

// describe renders an outbound event as a feed line. Chatty events only
// show in debug mode.
func describe(evt event.Event, debug bool) (string, bool) {
	switch e := evt.(type) {
	case achievement.Unlocked:
		return fmt.Sprintf("Achievement unlocked: %s", e.Achievement.Name), true
	case combo.Milestone:
		return fmt.Sprintf("Combo x%d!", e.Multiplier), true
	case combo.Lost:
		return fmt.Sprintf("Combo lost at %d", e.Combo), true
	case boss.Spawned:
		return fmt.Sprintf("%s has appeared!", e.Boss), true
	case boss.Damaged:
		return fmt.Sprintf("Boss hit: %d/%d", e.Health, e.MaxHealth), true
	case boss.Attack:
		return fmt.Sprintf("Boss attacks for %d", e.Damage), true
	case boss.Defeated:
		return fmt.Sprintf("Boss defeated! +%d", e.ScoreReward), true
	case boss.StateChanged:
		return fmt.Sprintf("boss %s -> %s", e.From, e.To), debug
	case combo.Changed:
		return fmt.Sprintf("combo %d x%d", e.Combo, e.Multiplier), debug
	}
	return "", false
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	if g.summary != nil {
		g.summary.Draw(screen)
		return
	}

	g.drawArena(screen)
	ebitenutil.DebugPrint(screen, g.hud())
	g.fillRect(screen, 10, common.BaseHeight-30, 300*g.comboBar, 12, colornames.Orange)
}

func (g *Game) drawArena(screen *ebiten.Image) {
	size := 2 * arenaHalf * pixelsPerUnit
	x, y := toScreen(cp.Vector{X: -arenaHalf, Y: -arenaHalf})
	g.fillRect(screen, x, y, size, size, colornames.Darkslategray)

	if e := g.sess.Bosses().CurrentBoss(); e != nil {
		side := 0.4 * e.Scale() * pixelsPerUnit
		clr := color.Color(colornames.Darkorange)
		switch e.State() {
		case boss.StateIdle:
			clr = colornames.Gray
		case boss.StateHurt:
			clr = colornames.White
		case boss.StateDefeated:
			clr = colornames.Black
		}
		bx, by := toScreen(e.Position())
		g.fillRect(screen, bx-side/2, by-side/2, side, side, clr)
	}

	px, py := toScreen(g.player)
	g.fillRect(screen, px-8, py-8, 16, 16, colornames.Crimson)
}

func (g *Game) fillRect(dst *ebiten.Image, x, y, w, h float64, clr color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	dst.DrawImage(g.pixel, op)
}

// toScreen maps a ground-plane position to screen pixels, origin at the
// screen center.
func toScreen(v cp.Vector) (float64, float64) {
	return common.BaseWidth/2 + v.X*pixelsPerUnit, common.BaseHeight/2 + v.Y*pixelsPerUnit
}

func (g *Game) hud() string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.0f    Time: %.1fs\n", ebiten.ActualFPS(), g.sess.Elapsed())
	fmt.Fprintf(&b, "Score: %d    Round: %d    Best: %d\n", g.sess.Score(), g.sess.Round()+1, g.sess.Leaderboard().HighScore())

	m := g.sess.Combo()
	fmt.Fprintf(&b, "Combo: %d  x%d\n", m.Combo(), m.Multiplier())

	if e := g.sess.Bosses().CurrentBoss(); e != nil {
		fmt.Fprintf(&b, "Boss: %s  %d/%d  (%s)\n", e.Config().Name, e.Health(), e.MaxHealth(), e.State())
	} else if g.sess.Bosses().CheckBossRound(g.sess.Round()) {
		b.WriteString("Boss: incoming\n")
	} else {
		b.WriteString("Boss: -\n")
	}

	p := g.sess.Achievements().Progress()
	fmt.Fprintf(&b, "Achievements: %d/%d (%d%%)\n\n", p.Unlocked, p.Total, p.Percentage)

	for _, line := range g.feed {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if g.showHelp {
		b.WriteString("\narrows move  C collect  H get hit  N next round  B hit boss  F finish run  F1 help\n")
	}
	return b.String()
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
