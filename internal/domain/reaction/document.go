package reaction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/turtacn/ReactionMapper/internal/domain/molecule"
	"github.com/turtacn/ReactionMapper/pkg/errors"
	rxntypes "github.com/turtacn/ReactionMapper/pkg/types/reaction"
)

// DecodeOptions controls the conversion of a Document into a Container.
type DecodeOptions struct {
	// AssignMissingIDs gives atoms without an identifier a fresh one from a
	// per-document IDAllocator.
	AssignMissingIDs bool

	// IDPrefix prefixes allocated identifiers.  Defaults to "a".
	IDPrefix string
}

// ParseDocument decodes a YAML document.  Unknown fields are rejected.
func ParseDocument(data []byte) (*rxntypes.Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	doc := &rxntypes.Document{}
	if err := dec.Decode(doc); err != nil {
		if err == io.EOF {
			return nil, errors.New(errors.ErrCodeReactionDocumentInvalid, "reaction document is empty")
		}
		return nil, errors.Wrap(err, errors.ErrCodeReactionDocumentInvalid, "cannot decode reaction document")
	}
	return doc, nil
}

// ParseJSONDocument decodes a JSON document.  Unknown fields are rejected.
func ParseJSONDocument(data []byte) (*rxntypes.Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	doc := &rxntypes.Document{}
	if err := dec.Decode(doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeReactionDocumentInvalid, "cannot decode reaction document")
	}
	return doc, nil
}

// EncodeDocument renders doc as YAML.
func EncodeDocument(doc *rxntypes.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "cannot encode reaction document")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "cannot encode reaction document")
	}
	return buf.Bytes(), nil
}

// LoadFile reads a reaction document from path (".json" files are decoded
// as JSON, anything else as YAML) and converts it.
func LoadFile(path string, opts DecodeOptions) (*Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeReactionDocumentInvalid, "cannot read reaction document").
			WithDetail("path=" + path)
	}
	var doc *rxntypes.Document
	if strings.EqualFold(filepath.Ext(path), ".json") {
		doc, err = ParseJSONDocument(data)
	} else {
		doc, err = ParseDocument(data)
	}
	if err != nil {
		return nil, err
	}
	if doc.ID == "" {
		doc.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return FromDocument(doc, opts)
}

// FromDocument builds a Container from doc.
//
// Entries with Ref reuse an earlier instance and Count repeats an entry, so
// both produce positions sharing one graph instance.  Similarity rows and
// columns address the expanded positions.
func FromDocument(doc *rxntypes.Document, opts DecodeOptions) (*Container, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeReactionDocumentInvalid, "reaction document is nil")
	}
	if len(doc.Reactants) == 0 && len(doc.Products) == 0 {
		return nil, errors.New(errors.ErrCodeReactionEmpty, "reaction has no reactants or products").
			WithDetail("reaction=" + doc.ID)
	}

	b := &documentBuilder{
		container: NewContainer(doc.ID),
		byID:      make(map[string]*molecule.Graph),
	}
	for k, gd := range doc.Reactants {
		if err := b.add(gd, fmt.Sprintf("r%d", k), true); err != nil {
			return nil, err
		}
	}
	for k, gd := range doc.Products {
		if err := b.add(gd, fmt.Sprintf("p%d", k), false); err != nil {
			return nil, err
		}
	}

	c := b.container
	for i, row := range doc.Similarity {
		if i >= c.EductCount() {
			return nil, errors.Newf(errors.ErrCodeReactionIndexOutOfRange,
				"similarity has %d rows but the reaction has %d reactant positions", len(doc.Similarity), c.EductCount())
		}
		for j, cell := range row {
			if cell == nil {
				continue
			}
			if err := c.SetSimilarity(i, j, *cell); err != nil {
				return nil, err
			}
		}
	}

	if opts.AssignMissingIDs {
		prefix := opts.IDPrefix
		if prefix == "" {
			prefix = "a"
		}
		alloc := NewIDAllocator(prefix)
		graphs := Graphs(c)
		for _, g := range graphs {
			alloc.Observe(g)
		}
		for _, g := range graphs {
			alloc.Assign(g)
		}
	}
	return c, nil
}

type documentBuilder struct {
	container *Container
	byID      map[string]*molecule.Graph
}

func (b *documentBuilder) add(gd rxntypes.GraphDoc, fallbackID string, reactant bool) error {
	if gd.Count < 0 {
		return errors.Newf(errors.ErrCodeReactionDocumentInvalid, "graph %s has negative count %d", gd.ID, gd.Count)
	}
	var g *molecule.Graph
	if gd.Ref != "" {
		if len(gd.Atoms) > 0 || len(gd.Bonds) > 0 {
			return errors.Newf(errors.ErrCodeReactionDocumentInvalid, "graph entry referencing %q must not define atoms", gd.Ref)
		}
		var ok bool
		if g, ok = b.byID[gd.Ref]; !ok {
			return errors.Newf(errors.ErrCodeReactionDocumentInvalid, "graph reference %q is not declared earlier", gd.Ref)
		}
	} else {
		id := gd.ID
		if id == "" {
			id = fallbackID
		}
		if _, dup := b.byID[id]; dup {
			return errors.Newf(errors.ErrCodeReactionDocumentInvalid, "graph %q is declared twice; use ref to reuse it", id)
		}
		var err error
		if g, err = buildGraph(id, gd); err != nil {
			return err
		}
		b.byID[id] = g
	}

	modified := gd.Modified == nil || *gd.Modified
	count := gd.Count
	if count == 0 {
		count = 1
	}
	for n := 0; n < count; n++ {
		if reactant {
			b.container.AddEduct(g, modified)
		} else {
			b.container.AddProduct(g, modified)
		}
	}
	return nil
}

func buildGraph(id string, gd rxntypes.GraphDoc) (*molecule.Graph, error) {
	g := molecule.NewGraph(id)
	for k, ad := range gd.Atoms {
		if ad.Symbol == "" {
			return nil, errors.Newf(errors.ErrCodeReactionDocumentInvalid, "atom %d of graph %s has no symbol", k, id)
		}
		a := g.AddAtom(ad.ID, ad.Symbol)
		a.Charge = ad.Charge
		a.Aromatic = ad.Aromatic
	}
	for _, bd := range gd.Bonds {
		order := molecule.BondOrder(bd.Order)
		if bd.Order == 0 {
			order = molecule.BondSingle
		}
		if _, err := g.AddBond(bd.Begin, bd.End, order); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeReactionDocumentInvalid, "invalid bond in graph "+id)
		}
	}
	return g, nil
}
