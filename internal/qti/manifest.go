package qti

import "encoding/xml"

// IMS content-package manifest model, shared by the builder and the
// reader. The manifest sits at the archive root and is the importer's
// entry point: every item resource is enumerated under <resources>, and
// the assessment's section structure is the ordered <organization> item
// list.

const (
	xmlnsManifest    = "http://www.imsglobal.org/xsd/imscp_v1p1"
	itemResourceType = "imsqti_item_xmlv2p1"
)

type imsManifest struct {
	XMLName       xml.Name         `xml:"manifest"`
	Identifier    string           `xml:"identifier,attr"`
	Xmlns         string           `xml:"xmlns,attr,omitempty"`
	Organizations imsOrganizations `xml:"organizations"`
	Resources     []imsResource    `xml:"resources>resource"`
}

type imsOrganizations struct {
	Default      string           `xml:"default,attr,omitempty"`
	Organization *imsOrganization `xml:"organization,omitempty"`
}

type imsOrganization struct {
	Identifier string        `xml:"identifier,attr"`
	Structure  string        `xml:"structure,attr,omitempty"`
	Title      string        `xml:"title,omitempty"`
	Items      []imsOrgEntry `xml:"item"`
}

type imsOrgEntry struct {
	Identifier    string `xml:"identifier,attr"`
	IdentifierRef string `xml:"identifierref,attr"`
	Title         string `xml:"title,omitempty"`
}

type imsResource struct {
	Identifier string    `xml:"identifier,attr"`
	Type       string    `xml:"type,attr"`
	Href       string    `xml:"href,attr"`
	Files      []imsFile `xml:"file"`
}

type imsFile struct {
	Href string `xml:"href,attr"`
}
