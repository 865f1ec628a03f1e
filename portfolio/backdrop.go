package portfolio

import (
	"fmt"
	"math"

	"github.com/phanxgames/folio"
	"github.com/tanema/gween/ease"
)

const (
	blobCount  = 5
	shapeCount = 5
)

// backdrop returns the decoration layer shared by the blob and shape
// sections. It lives in the document below everything else and is moved
// with the scroll offset so it appears fixed.
func (l *layout) backdrop() *folio.Node {
	for _, c := range l.doc.Children() {
		if c.Name == "backdrop" {
			return c
		}
	}
	n := folio.NewContainer("backdrop")
	n.SetZIndex(-10)
	n.SetSize(l.width, l.vh)
	l.doc.AddChild(n)
	return n
}

// backdropSection draws the large blurred color blobs behind the page.
type backdropSection struct {
	theme Theme
}

func (s *backdropSection) Name() string { return "backdrop" }

func (s *backdropSection) build(l *layout) {
	root := l.backdrop()
	t := s.theme
	w, vh := l.width, l.vh
	specs := [blobCount]struct {
		x, y, size float64
		c          folio.Color
	}{
		{40, 80, 384, t.Blue.WithAlpha(0.2)},
		{w - 40 - 320, 160, 320, t.Purple.WithAlpha(0.2)},
		{w / 2, vh - 80 - 288, 288, t.Pink.WithAlpha(0.2)},
		{80, vh / 2, 256, t.Cyan.WithAlpha(0.15)},
		{w*0.75 - 224, vh - 128 - 224, 224, t.Purple.WithAlpha(0.15)},
	}
	for i, b := range specs {
		wrap := folio.NewContainer(fmt.Sprintf("blob-wrap-%d", i))
		wrap.SetPosition(b.x, b.y)
		root.AddChild(wrap)

		drift := folio.NewContainer(fmt.Sprintf("blob-float-%d", i))
		wrap.AddChild(drift)

		blob := panel(drift, fmt.Sprintf("blob-%d", i), 0, 0, b.size, b.size, b.c)
		blob.CenterPivot()
	}
}

func (s *backdropSection) Mount(m *folio.Mounter) {
	root := m.Find("backdrop")
	if root == nil {
		return
	}
	vp := m.Viewport()
	m.OnTick(func(float32) {
		if root.Y != vp.ScrollY {
			root.SetPosition(root.X, vp.ScrollY)
		}
	})

	anim := m.Stage().Animator()
	run := func(tw *folio.TweenGroup) { anim.Add(tw) }

	var blobs []*folio.Node
	var wraps []*follower
	var bases []float64
	for i := 0; i < blobCount; i++ {
		blob := m.Find(fmt.Sprintf("blob-%d", i))
		if blob == nil {
			continue
		}
		blobs = append(blobs, blob)

		if drift := m.Find(fmt.Sprintf("blob-float-%d", i)); drift != nil {
			fi := float64(i)
			tl := folio.NewTimelineBuilder().
				To(drift, folio.Props{
					folio.PropX:        15 + fi*5,
					folio.PropY:        20 + fi*10,
					folio.PropRotation: deg(45 + fi*15),
				}, float32(8+2*i), easeSine, 0).
				Build().SetRepeat(-1).SetYoyo(true)
			m.Play(tl)
		}

		p := folio.NewParallax(blob, float64(i+1)*0.3, 50, 1, run)
		p.Ease = ease.OutQuad
		m.Pointer(p.Handle)
		m.Defer(p.Stop)

		if wrap := m.Find(fmt.Sprintf("blob-wrap-%d", i)); wrap != nil {
			wraps = append(wraps, newFollower(m, wrap))
			bases = append(bases, wrap.Y)
		}
	}

	intro := folio.NewTimelineBuilder().
		Stagger(blobs,
			folio.Props{folio.PropAlpha: 0, folio.PropRotation: 0}.Scale(0),
			folio.Props{folio.PropAlpha: 1, folio.PropRotation: 2 * math.Pi}.Scale(1),
			2, easeOut, 0.2, 0).
		Build()
	m.Play(intro)

	m.Scrub(m.Stage().Document(), folio.MustParseWindow("top top", "bottom bottom"), func(p float64) {
		for i, f := range wraps {
			speed := float64(i+1) * 0.5
			f.to(folio.Props{
				folio.PropY:        bases[i] + p*100*speed,
				folio.PropRotation: p * math.Pi * speed,
			}.Scale(1+p*0.1*speed), 0.3, easeOut)
		}
	})
}

// shapesSection floats small shapes over the backdrop and tilts them
// toward the pointer.
type shapesSection struct {
	theme Theme
}

func (s *shapesSection) Name() string { return "shapes" }

func (s *shapesSection) build(l *layout) {
	root := folio.NewContainer("shapes")
	root.SetSize(l.width, l.vh)
	root.CenterPivot()
	l.backdrop().AddChild(root)

	sizes := [shapeCount]float64{20, 15, 12, 18, 22}
	for i, size := range sizes {
		x := l.width * float64(20+i*15) / 100
		y := l.vh * float64(30+i*10) / 100
		c := s.theme.Blue
		if i%2 == 1 {
			c = s.theme.Purple
		}
		sh := panel(root, fmt.Sprintf("shape-%d", i), x, y, size, size, c.WithAlpha(0.15))
		sh.CenterPivot()
	}
}

func (s *shapesSection) Mount(m *folio.Mounter) {
	root := m.Find("shapes")
	if root == nil {
		return
	}
	for i := 0; i < shapeCount; i++ {
		sh := m.Find(fmt.Sprintf("shape-%d", i))
		if sh == nil {
			continue
		}
		tl := folio.NewTimelineBuilder().
			To(sh, folio.Props{folio.PropRotation: math.Pi, folio.PropY: sh.Y - 50}, float32(15+3*i)/2, easeSine, float32(i*2)).
			Build().SetRepeat(-1).SetYoyo(true)
		m.Play(tl)
	}

	tilt := newFollower(m, root)
	m.Pointer(func(off folio.PointerOffset) {
		tilt.to(folio.Props{
			folio.PropRotation: deg(off.X * 10),
			folio.PropY:        off.Y * 20,
		}, 0.5, easeOut)
	})
}
