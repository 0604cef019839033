package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/logictree/pkg/errors"
	"github.com/matzehuels/logictree/pkg/geom"
	"github.com/matzehuels/logictree/pkg/render"
	"github.com/matzehuels/logictree/pkg/tree"
)

// Document is the TOML description of a logic tree diagram. Boxes are
// placed explicitly; connections refer to boxes by name.
type Document struct {
	Title           string        `toml:"title"`
	TitlePosition   string        `toml:"title_position"`    // left, center (default), right
	TitleSpansBoxes bool          `toml:"title_spans_boxes"` // span box extents instead of axis limits
	Canvas          Canvas        `toml:"canvas"`
	Font            *Font         `toml:"font"`
	TitleFont       *Font         `toml:"title_font"`
	Boxes           []BoxSpec     `toml:"box"`
	Connections     []ConnSpec    `toml:"connection"`
	BiSplits        []BiSplitSpec `toml:"bisplit"`
}

// Canvas describes the figure viewport and data coordinate limits.
type Canvas struct {
	Width      float64    `toml:"width"`
	Height     float64    `toml:"height"`
	Background string     `toml:"background"`
	XLim       [2]float64 `toml:"xlim"`
	YLim       [2]float64 `toml:"ylim"`
}

// Font describes a text style override.
type Font struct {
	Family string  `toml:"family"`
	Size   float64 `toml:"size"`
	Color  string  `toml:"color"`
}

// BoxSpec describes one labeled box.
type BoxSpec struct {
	Name      string  `toml:"name"`
	Label     string  `toml:"label"`
	X         float64 `toml:"x"`
	Y         float64 `toml:"y"`
	Face      string  `toml:"face"`
	Edge      string  `toml:"edge"`
	LineWidth float64 `toml:"linewidth"`
	Corner    float64 `toml:"corner"`
	Angle     float64 `toml:"angle"`
	Width     float64 `toml:"width"`  // explicit size, both must be set
	Height    float64 `toml:"height"`
	TextColor string  `toml:"text_color"`
	FontSize  float64 `toml:"font_size"`
	TeX       bool    `toml:"tex"`
	Underline bool    `toml:"underline"`
}

// ConnSpec describes an arrow between two named boxes.
type ConnSpec struct {
	From      string  `toml:"from"`
	To        string  `toml:"to"`
	Route     string  `toml:"route"` // straight (default), h-then-v, v-then-h
	Split     bool    `toml:"split"`
	NoHead    bool    `toml:"nohead"`
	NoFill    bool    `toml:"nofill"`
	Width     float64 `toml:"width"`
	Face      string  `toml:"face"`
	Edge      string  `toml:"edge"`
	LineWidth float64 `toml:"linewidth"`
	Dashed    bool    `toml:"dashed"`
	Butt      float64 `toml:"butt"`
	Tip       float64 `toml:"tip"`
}

// BiSplitSpec describes a forked connection from one box into two.
type BiSplitSpec struct {
	From       string   `toml:"from"`
	To         []string `toml:"to"` // exactly two box names
	LabelLeft  string   `toml:"label_left"`
	LabelRight string   `toml:"label_right"`
	Width      float64  `toml:"width"`
	Face       string   `toml:"face"`
	Edge       string   `toml:"edge"`
	LineWidth  float64  `toml:"linewidth"`
	Dashed     bool     `toml:"dashed"`
	Butt       float64  `toml:"butt"`
	Tip        float64  `toml:"tip"`
}

// LoadDocument reads and decodes a TOML document from path.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "reading document %s", path)
	}
	return ParseDocument(data)
}

// ParseDocument decodes a TOML document from raw bytes.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parsing document")
	}
	return &doc, nil
}

// Build assembles the tree described by the document: figure options
// first, then boxes in order, then connections and forks.
func (d *Document) Build() (*tree.Tree, error) {
	t := tree.New(d.treeOptions()...)

	for i := range d.Boxes {
		if _, err := t.AddBox(d.Boxes[i].Name, d.Boxes[i].Label,
			d.Boxes[i].X, d.Boxes[i].Y, d.Boxes[i].options()...); err != nil {
			return nil, err
		}
	}

	for i := range d.Connections {
		if err := d.addConnection(t, &d.Connections[i]); err != nil {
			return nil, err
		}
	}
	for i := range d.BiSplits {
		if err := d.addBiSplit(t, &d.BiSplits[i]); err != nil {
			return nil, err
		}
	}

	if d.Title != "" {
		pos := render.HCenter
		if d.TitlePosition != "" {
			pos = render.HAlign(d.TitlePosition)
		}
		if err := t.MakeTitle(pos, d.TitleSpansBoxes); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (d *Document) treeOptions() []tree.Option {
	var opts []tree.Option
	if d.Canvas.Width > 0 && d.Canvas.Height > 0 {
		opts = append(opts, tree.WithSize(d.Canvas.Width, d.Canvas.Height))
	}
	if d.Canvas.XLim != [2]float64{} || d.Canvas.YLim != [2]float64{} {
		opts = append(opts, tree.WithLimits(
			d.Canvas.XLim[0], d.Canvas.XLim[1],
			d.Canvas.YLim[0], d.Canvas.YLim[1]))
	}
	if d.Canvas.Background != "" {
		opts = append(opts, tree.WithBackground(d.Canvas.Background))
	}
	if d.Title != "" {
		opts = append(opts, tree.WithTitle(d.Title))
	}
	if f := d.Font; f != nil {
		opts = append(opts, tree.WithFont(f.style()))
	}
	if f := d.TitleFont; f != nil {
		opts = append(opts, tree.WithTitleFont(f.style()))
	}
	return opts
}

func (f *Font) style() tree.FontStyle {
	return tree.FontStyle{Family: f.Family, Size: f.Size, Color: f.Color}
}

func (b *BoxSpec) options() []tree.BoxOption {
	var opts []tree.BoxOption
	if b.Face != "" {
		opts = append(opts, tree.BoxFace(b.Face))
	}
	if b.Edge != "" {
		opts = append(opts, tree.BoxEdge(b.Edge))
	}
	if b.LineWidth > 0 {
		opts = append(opts, tree.BoxLineWidth(b.LineWidth))
	}
	if b.Corner > 0 {
		opts = append(opts, tree.BoxCorner(b.Corner))
	}
	if b.Angle != 0 {
		opts = append(opts, tree.BoxAngle(b.Angle))
	}
	if b.Width > 0 && b.Height > 0 {
		opts = append(opts, tree.BoxSize(b.Width, b.Height))
	}
	if b.TextColor != "" {
		opts = append(opts, tree.BoxTextColor(b.TextColor))
	}
	if b.FontSize > 0 {
		opts = append(opts, tree.BoxFontSize(b.FontSize))
	}
	if b.TeX {
		opts = append(opts, tree.BoxTeX())
	}
	if b.Underline {
		opts = append(opts, tree.BoxUnderline())
	}
	return opts
}

func (d *Document) lookup(t *tree.Tree, name string) (*tree.Box, error) {
	b, ok := t.Box(name)
	if !ok {
		return nil, errors.New(errors.ErrCodeBoxNotFound, "no box named %q", name)
	}
	return b, nil
}

func (d *Document) addConnection(t *tree.Tree, c *ConnSpec) error {
	from, err := d.lookup(t, c.From)
	if err != nil {
		return err
	}
	to, err := d.lookup(t, c.To)
	if err != nil {
		return err
	}

	var opts []tree.ConnOption
	if c.Route != "" {
		route, err := geom.ParseRoute(c.Route)
		if err != nil {
			return err
		}
		opts = append(opts, tree.ConnRoute(route))
	}
	if c.Split {
		opts = append(opts, tree.ConnSplit())
	}
	if c.NoHead {
		opts = append(opts, tree.ConnNoHead())
	}
	if c.NoFill {
		opts = append(opts, tree.ConnNoFill())
	}
	if c.Width > 0 {
		opts = append(opts, tree.ConnWidth(c.Width))
	}
	if c.Face != "" {
		opts = append(opts, tree.ConnFace(c.Face))
	}
	if c.Edge != "" {
		opts = append(opts, tree.ConnEdge(c.Edge))
	}
	if c.LineWidth > 0 {
		opts = append(opts, tree.ConnLineWidth(c.LineWidth))
	}
	if c.Dashed {
		opts = append(opts, tree.ConnDashed())
	}
	if c.Butt > 0 {
		opts = append(opts, tree.ConnButtOffset(c.Butt))
	}
	if c.Tip > 0 {
		opts = append(opts, tree.ConnTipOffset(c.Tip))
	}

	_, err = t.AddConnection(from, to, opts...)
	return err
}

func (d *Document) addBiSplit(t *tree.Tree, s *BiSplitSpec) error {
	if len(s.To) != 2 {
		return errors.New(errors.ErrCodeInvalidBox,
			"bisplit from %q needs exactly two targets, got %d", s.From, len(s.To))
	}
	from, err := d.lookup(t, s.From)
	if err != nil {
		return err
	}
	first, err := d.lookup(t, s.To[0])
	if err != nil {
		return err
	}
	second, err := d.lookup(t, s.To[1])
	if err != nil {
		return err
	}

	var opts []tree.BiOption
	if s.LabelLeft != "" {
		opts = append(opts, tree.BiLabelLeft(s.LabelLeft))
	}
	if s.LabelRight != "" {
		opts = append(opts, tree.BiLabelRight(s.LabelRight))
	}
	if s.Width > 0 {
		opts = append(opts, tree.BiWidth(s.Width))
	}
	if s.Face != "" {
		opts = append(opts, tree.BiFace(s.Face))
	}
	if s.Edge != "" {
		opts = append(opts, tree.BiEdge(s.Edge))
	}
	if s.LineWidth > 0 {
		opts = append(opts, tree.BiLineWidth(s.LineWidth))
	}
	if s.Dashed {
		opts = append(opts, tree.BiDashed())
	}
	if s.Butt > 0 {
		opts = append(opts, tree.BiButtOffset(s.Butt))
	}
	if s.Tip > 0 {
		opts = append(opts, tree.BiTipOffset(s.Tip))
	}

	return t.AddConnectionBiSplit(from, first, second, opts...)
}
