package qti

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"quizbank/internal/domain"
)

// Package is the parsed view of a built archive, enough for consumers
// (and the round-trip tests) to verify structure: manifest identity, the
// declared organization order, and every item resource.
type Package struct {
	Identifier string
	// OrganizationRefs lists item resource identifiers in declared order.
	OrganizationRefs []string
	Resources        []ResourceInfo
	Items            map[string]ParsedItem // keyed by resource identifier
}

type ResourceInfo struct {
	Identifier string
	Type       string
	Href       string
}

// ParsedItem is the subset of an assessment item the reader extracts.
type ParsedItem struct {
	Identifier string
	Title      string
	Label      string
	Prompt     string
	Kind       string // choice_single, choice_multi, text_entry
	Choices    []string
	AnswerKey  []string
}

// ReadPackage parses an archive produced by BuildPackage.
func ReadPackage(data []byte) (*Package, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, domain.NewParseError("archive", err)
	}

	files := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, domain.NewParseError(f.Name, err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, domain.NewParseError(f.Name, err)
		}
		files[f.Name] = b
	}

	mfData, ok := files["imsmanifest.xml"]
	if !ok {
		return nil, domain.NewParseError("archive", fmt.Errorf("imsmanifest.xml not found at root"))
	}
	var mf imsManifest
	if err := xml.Unmarshal(mfData, &mf); err != nil {
		return nil, domain.NewParseError("imsmanifest.xml", err)
	}

	pkg := &Package{
		Identifier: mf.Identifier,
		Items:      make(map[string]ParsedItem, len(mf.Resources)),
	}
	if mf.Organizations.Organization != nil {
		for _, e := range mf.Organizations.Organization.Items {
			pkg.OrganizationRefs = append(pkg.OrganizationRefs, e.IdentifierRef)
		}
	}

	for _, r := range mf.Resources {
		pkg.Resources = append(pkg.Resources, ResourceInfo{
			Identifier: r.Identifier,
			Type:       r.Type,
			Href:       r.Href,
		})
		itemData, ok := files[r.Href]
		if !ok {
			return nil, domain.NewParseError(r.Href,
				fmt.Errorf("manifest references missing resource file"))
		}
		item, err := parseItem(itemData)
		if err != nil {
			return nil, domain.NewParseError(r.Href, err)
		}
		pkg.Items[r.Identifier] = item
	}

	return pkg, nil
}

func parseItem(data []byte) (ParsedItem, error) {
	var it assessmentItem
	if err := xml.Unmarshal(data, &it); err != nil {
		return ParsedItem{}, err
	}
	pi := ParsedItem{
		Identifier: it.Identifier,
		Title:      it.Title,
		Label:      it.Label,
		Prompt:     it.Body.Prompt,
	}
	switch {
	case it.Body.ChoiceInteraction != nil:
		pi.Kind = "choice_single"
		if it.ResponseDecl != nil && it.ResponseDecl.Cardinality == "multiple" {
			pi.Kind = "choice_multi"
		}
		for _, c := range it.Body.ChoiceInteraction.Choices {
			pi.Choices = append(pi.Choices, c.Text)
		}
	case it.Body.TextEntry != nil:
		pi.Kind = "text_entry"
	}
	if it.ResponseDecl != nil && it.ResponseDecl.Correct != nil {
		pi.AnswerKey = it.ResponseDecl.Correct.Values
	}
	return pi, nil
}
