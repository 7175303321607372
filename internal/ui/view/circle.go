package view

import (
	"image/color"

	"breathe/internal/core/breath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

const (
	minCircleScale = float32(0.35)
	maxCircleScale = float32(0.9)
)

// breathCircle grows while inhaling, holds its size and shrinks while exhaling.
type breathCircle struct {
	circle    *canvas.Circle
	holder    *fyne.Container
	scale     float32
	animation *fyne.Animation
}

func newBreathCircle(fill color.Color) *breathCircle {
	circle := &breathCircle{
		circle: canvas.NewCircle(fill),
		scale:  minCircleScale,
	}
	circle.holder = container.New(&circleLayout{circle: circle}, circle.circle)
	return circle
}

func (circle *breathCircle) object() fyne.CanvasObject {
	return circle.holder
}

func (circle *breathCircle) animate(phase breath.Phase) {
	circle.stop()

	var target float32
	switch phase {
	case breath.PhaseInhale:
		target = maxCircleScale
	case breath.PhaseExhale:
		target = minCircleScale
	default:
		return
	}

	from := circle.scale
	circle.animation = fyne.NewAnimation(phase.Duration(), func(progress float32) {
		circle.setScale(from + (target-from)*progress)
	})
	circle.animation.Curve = fyne.AnimationEaseInOut
	circle.animation.Start()
}

func (circle *breathCircle) stop() {
	if circle.animation != nil {
		circle.animation.Stop()
		circle.animation = nil
	}
}

func (circle *breathCircle) reset() {
	circle.stop()
	circle.setScale(minCircleScale)
}

func (circle *breathCircle) setScale(scale float32) {
	circle.scale = scale
	circle.holder.Refresh()
}

type circleLayout struct {
	circle *breathCircle
}

func (layout *circleLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	side := size.Width
	if size.Height < side {
		side = size.Height
	}
	diameter := side * layout.circle.scale
	for _, object := range objects {
		object.Resize(fyne.NewSize(diameter, diameter))
		object.Move(fyne.NewPos((size.Width-diameter)/2, (size.Height-diameter)/2))
	}
}

func (layout *circleLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(160, 160)
}
