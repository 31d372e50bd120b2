package doc

// AutoList is a markdown-style list recognized from "-" or "1." prefixes.
// Depth counts enclosing auto lists and selects the marker style for
// ordered lists when rendering.
type AutoList struct {
	comp
	Indent  int
	Ordered bool
	Depth   int
}

func NewAutoList(parent Node, indent int, ordered bool, depth int) *AutoList {
	l := &AutoList{Indent: indent, Ordered: ordered, Depth: depth}
	l.init(l, parent)
	return l
}

func (*AutoList) Kind() Kind { return KindAutoList }

// AutoListItem is one item of an AutoList.
type AutoListItem struct {
	comp
	Indent int
	Num    int
}

func NewAutoListItem(parent Node, indent, num int) *AutoListItem {
	i := &AutoListItem{Indent: indent, Num: num}
	i.init(i, parent)
	return i
}

func (*AutoListItem) Kind() Kind { return KindAutoListItem }

// Title holds the inline content of a user-supplied section title.
type Title struct {
	comp
}

func NewTitle(parent Node) *Title {
	t := &Title{}
	t.init(t, parent)
	return t
}

func (*Title) Kind() Kind { return KindTitle }

// XRefItem is one item of a cross-referenced list (todo, bug, ...).
type XRefItem struct {
	comp
	ID      int
	Key     string
	File    string
	Anchor  string
	Title   string
	RelPath string
}

func NewXRefItem(parent Node, id int, key string) *XRefItem {
	x := &XRefItem{ID: id, Key: key}
	x.init(x, parent)
	return x
}

func (*XRefItem) Kind() Kind { return KindXRefItem }

// ImageType selects which backend an image was written for.
type ImageType int

const (
	ImageHTML ImageType = iota
	ImageLatex
	ImageRTF
	ImageDocbook
)

// Image embeds a picture. Children, if any, form the caption.
type Image struct {
	comp
	Attrs   AttrList
	Name    string
	Type    ImageType
	Width   string
	Height  string
	RelPath string
	URL     string
}

func NewImage(parent Node, attrs AttrList, name string, t ImageType, url string) *Image {
	m := &Image{Attrs: attrs, Name: name, Type: t, URL: url}
	m.init(m, parent)
	return m
}

func (*Image) Kind() Kind          { return KindImage }
func (m *Image) HasCaption() bool  { return len(m.children) > 0 }

// DotFile references an external graph description rasterized by the
// graph tool at render time. Children form the caption.
type DotFile struct {
	comp
	Name    string
	File    string
	RelPath string
	Width   string
	Height  string
	Context string
}

func NewDotFile(parent Node, name, context string) *DotFile {
	d := &DotFile{Name: name, File: name, Context: context}
	d.init(d, parent)
	return d
}

func (*DotFile) Kind() Kind         { return KindDotFile }
func (d *DotFile) HasCaption() bool { return len(d.children) > 0 }

// MscFile references an external sequence-diagram source. Same shape as
// DotFile, different renderer.
type MscFile struct {
	comp
	Name    string
	File    string
	RelPath string
	Width   string
	Height  string
	Context string
}

func NewMscFile(parent Node, name, context string) *MscFile {
	m := &MscFile{Name: name, File: name, Context: context}
	m.init(m, parent)
	return m
}

func (*MscFile) Kind() Kind         { return KindMscFile }
func (m *MscFile) HasCaption() bool { return len(m.children) > 0 }

// DiaFile references an external generic-diagram source.
type DiaFile struct {
	comp
	Name    string
	File    string
	RelPath string
	Width   string
	Height  string
	Context string
}

func NewDiaFile(parent Node, name, context string) *DiaFile {
	d := &DiaFile{Name: name, File: name, Context: context}
	d.init(d, parent)
	return d
}

func (*DiaFile) Kind() Kind         { return KindDiaFile }
func (d *DiaFile) HasCaption() bool { return len(d.children) > 0 }

// HRef is an explicit hyperlink written as an HTML anchor tag.
type HRef struct {
	comp
	Attrs   AttrList
	URL     string
	RelPath string
}

func NewHRef(parent Node, attrs AttrList, url, relPath string) *HRef {
	h := &HRef{Attrs: attrs, URL: url, RelPath: relPath}
	h.init(h, parent)
	return h
}

func (*HRef) Kind() Kind { return KindHRef }

// Link is a resolved link to a documented entity with explicit link text.
type Link struct {
	comp
	File    string
	RelPath string
	Ref     string
	Anchor  string
}

func NewLink(parent Node, file, relPath, ref, anchor string) *Link {
	l := &Link{File: file, RelPath: relPath, Ref: ref, Anchor: anchor}
	l.init(l, parent)
	return l
}

func (*Link) Kind() Kind { return KindLink }

// Ref is a reference to a documented entity or section. When the children
// are empty the target's own title is used as the link text.
type Ref struct {
	comp
	File         string
	RelPath      string
	Ref          string
	Anchor       string
	TargetTitle  string
	RefToSection bool
	RefToAnchor  bool
	IsSubPage    bool
}

func NewRef(parent Node) *Ref {
	r := &Ref{}
	r.init(r, parent)
	return r
}

func (*Ref) Kind() Kind           { return KindRef }
func (r *Ref) HasLinkText() bool  { return len(r.children) > 0 }

// InternalRef is a reference local to the current translation unit.
type InternalRef struct {
	comp
	File    string
	RelPath string
	Anchor  string
}

func NewInternalRef(parent Node, file, anchor string) *InternalRef {
	r := &InternalRef{File: file, Anchor: anchor}
	r.init(r, parent)
	return r
}

func (*InternalRef) Kind() Kind { return KindInternalRef }

// HTMLHeader is an explicit <h1>..<h6> heading.
type HTMLHeader struct {
	comp
	Level int
	Attrs AttrList
}

func NewHTMLHeader(parent Node, attrs AttrList, level int) *HTMLHeader {
	h := &HTMLHeader{Level: level, Attrs: attrs}
	h.init(h, parent)
	return h
}

func (*HTMLHeader) Kind() Kind { return KindHTMLHeader }

// ListType distinguishes ordered from unordered HTML lists.
type ListType int

const (
	Unordered ListType = iota
	Ordered
)

// HTMLList is a list written with explicit <ul>/<ol> tags.
type HTMLList struct {
	comp
	Type  ListType
	Attrs AttrList
}

func NewHTMLList(parent Node, attrs AttrList, t ListType) *HTMLList {
	l := &HTMLList{Type: t, Attrs: attrs}
	l.init(l, parent)
	return l
}

func (*HTMLList) Kind() Kind { return KindHTMLList }

// HTMLListItem is one <li>.
type HTMLListItem struct {
	comp
	Attrs AttrList
	Num   int
}

func NewHTMLListItem(parent Node, attrs AttrList, num int) *HTMLListItem {
	i := &HTMLListItem{Attrs: attrs, Num: num}
	i.init(i, parent)
	return i
}

func (*HTMLListItem) Kind() Kind { return KindHTMLListItem }

// HTMLDescList is a <dl> description list.
type HTMLDescList struct {
	comp
	Attrs AttrList
}

func NewHTMLDescList(parent Node, attrs AttrList) *HTMLDescList {
	l := &HTMLDescList{Attrs: attrs}
	l.init(l, parent)
	return l
}

func (*HTMLDescList) Kind() Kind { return KindHTMLDescList }

// HTMLDescTitle is a <dt>.
type HTMLDescTitle struct {
	comp
	Attrs AttrList
}

func NewHTMLDescTitle(parent Node, attrs AttrList) *HTMLDescTitle {
	t := &HTMLDescTitle{Attrs: attrs}
	t.init(t, parent)
	return t
}

func (*HTMLDescTitle) Kind() Kind { return KindHTMLDescTitle }

// HTMLDescData is a <dd>.
type HTMLDescData struct {
	comp
	Attrs AttrList
}

func NewHTMLDescData(parent Node, attrs AttrList) *HTMLDescData {
	d := &HTMLDescData{Attrs: attrs}
	d.init(d, parent)
	return d
}

func (*HTMLDescData) Kind() Kind { return KindHTMLDescData }

// HTMLBlockQuote is a <blockquote>.
type HTMLBlockQuote struct {
	comp
	Attrs AttrList
}

func NewHTMLBlockQuote(parent Node, attrs AttrList) *HTMLBlockQuote {
	b := &HTMLBlockQuote{Attrs: attrs}
	b.init(b, parent)
	return b
}

func (*HTMLBlockQuote) Kind() Kind { return KindHTMLBlockQuote }

// Section is a document section opened by a section command. Sections nest
// by level; the anchor identifies the section across files.
type Section struct {
	comp
	Level  int
	ID     string
	Title  string
	Anchor string
	File   string
}

func NewSection(parent Node, level int, id string) *Section {
	s := &Section{Level: level, ID: id, Anchor: id}
	s.init(s, parent)
	return s
}

func (*Section) Kind() Kind { return KindSection }

// SecRefItem is one entry of a section-reference list.
type SecRefItem struct {
	comp
	Target string
	File   string
	Anchor string
}

func NewSecRefItem(parent Node, target string) *SecRefItem {
	r := &SecRefItem{Target: target, Anchor: target}
	r.init(r, parent)
	return r
}

func (*SecRefItem) Kind() Kind { return KindSecRefItem }

// SecRefList is a multi-column list of section references.
type SecRefList struct {
	comp
}

func NewSecRefList(parent Node) *SecRefList {
	l := &SecRefList{}
	l.init(l, parent)
	return l
}

func (*SecRefList) Kind() Kind { return KindSecRefList }

// Internal holds documentation meant for internal builds only.
type Internal struct {
	comp
}

func NewInternal(parent Node) *Internal {
	i := &Internal{}
	i.init(i, parent)
	return i
}

func (*Internal) Kind() Kind { return KindInternal }

// ParBlock groups several paragraphs into one command argument.
type ParBlock struct {
	comp
}

func NewParBlock(parent Node) *ParBlock {
	b := &ParBlock{}
	b.init(b, parent)
	return b
}

func (*ParBlock) Kind() Kind { return KindParBlock }

// SimpleList is a list built from item commands rather than markup tags.
type SimpleList struct {
	comp
}

func NewSimpleList(parent Node) *SimpleList {
	l := &SimpleList{}
	l.init(l, parent)
	return l
}

func (*SimpleList) Kind() Kind { return KindSimpleList }

// SimpleListItem holds one paragraph.
type SimpleListItem struct {
	comp
}

func NewSimpleListItem(parent Node) *SimpleListItem {
	i := &SimpleListItem{}
	i.init(i, parent)
	return i
}

func (*SimpleListItem) Kind() Kind { return KindSimpleListItem }

// SectionType is the type of a simple section. Each maps to a localized
// heading supplied by the translation provider.
type SectionType int

const (
	SectUnknown SectionType = iota
	SectSee
	SectReturn
	SectAuthor
	SectAuthors
	SectVersion
	SectSince
	SectDate
	SectNote
	SectWarning
	SectCopyright
	SectPre
	SectPost
	SectInvariant
	SectRemark
	SectAttention
	SectUser
	SectRcs
)

func (t SectionType) String() string {
	switch t {
	case SectSee:
		return "see"
	case SectReturn:
		return "return"
	case SectAuthor:
		return "author"
	case SectAuthors:
		return "authors"
	case SectVersion:
		return "version"
	case SectSince:
		return "since"
	case SectDate:
		return "date"
	case SectNote:
		return "note"
	case SectWarning:
		return "warning"
	case SectCopyright:
		return "copyright"
	case SectPre:
		return "pre"
	case SectPost:
		return "post"
	case SectInvariant:
		return "invariant"
	case SectRemark:
		return "remark"
	case SectAttention:
		return "attention"
	case SectUser:
		return "par"
	case SectRcs:
		return "rcs"
	}
	return "illegal"
}

// SimpleSect is a typed block such as "See also" or "Note". Consecutive
// sections of the same type merge into one node with separator children.
type SimpleSect struct {
	comp
	Type  SectionType
	title *Title
}

func NewSimpleSect(parent Node, t SectionType) *SimpleSect {
	s := &SimpleSect{Type: t}
	s.init(s, parent)
	return s
}

func (*SimpleSect) Kind() Kind { return KindSimpleSect }

// Title returns the user-supplied title, or nil for the standard heading.
func (s *SimpleSect) Title() *Title { return s.title }

// SetTitle installs a user-supplied title, prepending it to the children.
func (s *SimpleSect) SetTitle(t *Title) {
	s.title = t
	t.SetParent(s)
	s.children = append([]Node{t}, s.children...)
}

// ParamType is the flavor of a parameter section.
type ParamType int

const (
	ParamParam ParamType = iota
	ParamRetVal
	ParamException
	ParamTemplate
)

// Direction is the data direction of one parameter entry.
type Direction int

const (
	DirUnspecified Direction = 0
	DirIn          Direction = 1
	DirOut         Direction = 2
	DirInOut       Direction = 3
)

func (d Direction) String() string {
	switch d {
	case DirIn:
		return "in"
	case DirOut:
		return "out"
	case DirInOut:
		return "in,out"
	}
	return ""
}

// ParamSect is a parameter section. HasInOut and HasType are the union
// over all entries: if any entry carried a direction or an explicit type,
// every row of the rendered table gets that column.
type ParamSect struct {
	comp
	Type     ParamType
	HasInOut bool
	HasType  bool
}

func NewParamSect(parent Node, t ParamType) *ParamSect {
	s := &ParamSect{Type: t}
	s.init(s, parent)
	return s
}

func (*ParamSect) Kind() Kind { return KindParamSect }

// ParamList is one row of a parameter section: the parameter names, the
// optional type words, and a description made of paragraph children.
type ParamList struct {
	comp
	Type   ParamType
	Dir    Direction
	Params []Node
	Types  []Node
	first  bool
	last   bool
}

func NewParamList(parent Node, t ParamType, d Direction) *ParamList {
	l := &ParamList{Type: t, Dir: d, first: true, last: true}
	l.init(l, parent)
	return l
}

func (*ParamList) Kind() Kind        { return KindParamList }
func (l *ParamList) IsFirst() bool   { return l.first }
func (l *ParamList) IsLast() bool    { return l.last }
func (l *ParamList) MarkFirst(v bool) { l.first = v }
func (l *ParamList) MarkLast(v bool)  { l.last = v }

// AddParam appends a parameter name node. Word and LinkedWord nodes are
// the only kinds that occur here.
func (l *ParamList) AddParam(n Node) {
	n.SetParent(l)
	l.Params = append(l.Params, n)
}

// AddType appends a type-specifier word.
func (l *ParamList) AddType(n Node) {
	n.SetParent(l)
	l.Types = append(l.Types, n)
}
