// Package qti builds the import package consumed by the external
// grading platform: a zip archive with an IMS manifest at the root and
// one QTI 2.1 assessment item per question, each in its own
// subdirectory. Identifiers inside the package are generated fresh per
// build so they never collide with identifiers from other imports.
package qti

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"

	"quizbank/internal/domain"
	"quizbank/internal/util"

	"github.com/google/uuid"
)

// Builder assembles import packages. The identifier generators are
// injectable so tests can assert on stable archives.
type Builder struct {
	newPackageID  func() string
	newResourceID func() string
}

// NewBuilder returns a Builder with production identifier sources:
// a UUID for the package, ULIDs for item resources.
func NewBuilder() *Builder {
	return &Builder{
		newPackageID:  func() string { return "pkg-" + uuid.NewString() },
		newResourceID: func() string { return "res-" + util.NewULID() },
	}
}

// NewBuilderWithIdents returns a Builder using caller-supplied
// identifier sources, for deterministic tests.
func NewBuilderWithIdents(pkgID func() string, resID func() string) *Builder {
	return &Builder{newPackageID: pkgID, newResourceID: resID}
}

// BuildPackage encodes the resolved question list into a single zip
// archive. The whole package is assembled in memory and only returned
// complete: a failed build emits no bytes, so no truncated package can
// reach disk.
func (b *Builder) BuildPackage(title string, items []domain.QuestionItem) ([]byte, error) {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	mf := imsManifest{
		Identifier: b.newPackageID(),
		Xmlns:      xmlnsManifest,
	}
	org := &imsOrganization{
		Identifier: "org-1",
		Structure:  "rooted-hierarchy",
		Title:      title,
	}

	for i, q := range items {
		ident := b.newResourceID()
		href := fmt.Sprintf("items/%s/item.xml", ident)

		item, err := encodeItem(ident, q)
		if err != nil {
			return nil, err
		}
		data, err := marshalXML(item)
		if err != nil {
			return nil, domain.NewInternalError("cannot marshal item "+q.ID, err)
		}
		w, err := zw.Create(href)
		if err != nil {
			return nil, domain.NewInternalError("cannot add item to archive", err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, domain.NewInternalError("cannot write item to archive", err)
		}

		mf.Resources = append(mf.Resources, imsResource{
			Identifier: ident,
			Type:       itemResourceType,
			Href:       href,
			Files:      []imsFile{{Href: href}},
		})
		org.Items = append(org.Items, imsOrgEntry{
			Identifier:    fmt.Sprintf("itemref-%d", i+1),
			IdentifierRef: ident,
			Title:         itemTitle(q),
		})
	}

	mf.Organizations = imsOrganizations{Default: org.Identifier, Organization: org}

	data, err := marshalXML(mf)
	if err != nil {
		return nil, domain.NewInternalError("cannot marshal manifest", err)
	}
	w, err := zw.Create("imsmanifest.xml")
	if err != nil {
		return nil, domain.NewInternalError("cannot add manifest to archive", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, domain.NewInternalError("cannot write manifest to archive", err)
	}

	if err := zw.Close(); err != nil {
		return nil, domain.NewInternalError("cannot finalize archive", err)
	}
	return buf.Bytes(), nil
}

func marshalXML(v any) ([]byte, error) {
	body, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
