package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Prompt is a simple modal text input. When open it captures typed
// characters and calls the callback when the user presses Enter. A callback
// error keeps the prompt open with the message shown under the input.
// Pressing Escape closes the prompt without invoking the callback.
type Prompt struct {
	open    bool
	label   string
	input   []rune
	errMsg  string
	onEnter func(string) error
}

func NewPrompt() *Prompt { return &Prompt{} }

func (p *Prompt) IsOpen() bool { return p.open }

// Open shows the prompt with the given label, initial input, and callback.
func (p *Prompt) Open(label, initial string, onEnter func(string) error) {
	p.label = label
	p.input = []rune(initial)
	p.errMsg = ""
	p.onEnter = onEnter
	p.open = true
}

// Close hides the prompt without invoking the callback.
func (p *Prompt) Close() {
	p.open = false
	p.label = ""
	p.input = p.input[:0]
	p.errMsg = ""
	p.onEnter = nil
}

// Update processes input for the prompt. Returns true if the prompt is open
// (so callers can early-return and avoid processing other input).
func (p *Prompt) Update() bool {
	if !p.open {
		return false
	}
	for _, r := range ebiten.AppendInputChars(nil) {
		if r == '\n' || r == '\r' {
			continue
		}
		p.input = append(p.input, r)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(p.input) > 0 {
		p.input = p.input[:len(p.input)-1]
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		// The callback may open a follow-up prompt, so close first.
		cur := string(p.input)
		fn := p.onEnter
		label := p.label
		p.open = false
		if fn != nil {
			if err := fn(cur); err != nil {
				p.Open(label, cur, fn)
				p.errMsg = err.Error()
				return true
			}
		}
		if p.open {
			return true
		}
		p.Close()
		return true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		p.Close()
		return true
	}
	return true
}

// Draw renders the prompt overlay into the provided screen.
func (p *Prompt) Draw(screen *ebiten.Image) {
	if !p.open {
		return
	}
	sw := screen.Bounds().Dx()
	sh := screen.Bounds().Dy()
	ebitenutil.DrawRect(screen, 0, float64(sh/2-28), float64(sw), 56, color.RGBA{A: 0xcc})
	prompt := p.label
	if prompt == "" {
		prompt = "Input:"
	}
	ebitenutil.DebugPrintAt(screen, prompt+" "+string(p.input)+"_", 16, sh/2-20)
	if p.errMsg != "" {
		ebitenutil.DebugPrintAt(screen, p.errMsg, 16, sh/2+2)
	}
}
