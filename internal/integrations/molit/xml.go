package molit

import (
	"fmt"

	"github.com/beevik/etree"
)

// XMLParser reads the registry's XML envelope
type XMLParser struct{}

func (XMLParser) ContentType() string { return "application/xml" }

// Items parses the document and returns the child elements of every <item>
func (XMLParser) Items(body []byte) ([]map[string]string, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %v", err)
	}

	if errMsg := doc.FindElement("//errMsg"); errMsg != nil {
		reason := errMsg.Text()
		if auth := doc.FindElement("//returnAuthMsg"); auth != nil {
			reason = auth.Text()
		}
		return nil, fmt.Errorf("service error: %s", reason)
	}
	if code := doc.FindElement("//header/resultCode"); code != nil && !resultOK(code.Text()) {
		msg := ""
		if m := doc.FindElement("//header/resultMsg"); m != nil {
			msg = m.Text()
		}
		return nil, fmt.Errorf("result code %s: %s", code.Text(), msg)
	}

	elements := doc.FindElements("//item")
	items := make([]map[string]string, 0, len(elements))
	for _, el := range elements {
		item := make(map[string]string, len(el.ChildElements()))
		for _, child := range el.ChildElements() {
			item[child.Tag] = child.Text()
		}
		items = append(items, item)
	}
	return items, nil
}
