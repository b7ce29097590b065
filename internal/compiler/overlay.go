package compiler

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"aslsp/internal/diag"
)

// xmlNode is a generic element tree; configuration files are walked rather
// than bound to a fixed schema because variable names come from the
// nesting.
type xmlNode struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Nodes   []xmlNode  `xml:",any"`
	Text    string     `xml:",chardata"`
}

func (n *xmlNode) attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func (n *xmlNode) child(name string) *xmlNode {
	for i := range n.Nodes {
		if n.Nodes[i].XMLName.Local == name {
			return &n.Nodes[i]
		}
	}
	return nil
}

// loadOverlay reads an XML configuration file into assignments.
//
//	<royale-config>
//	  <compiler>
//	    <source-path append="true"><path-element>src</path-element></source-path>
//	    <define><name>CONFIG::debug</name><value>true</value></define>
//	    <debug>true</debug>
//	  </compiler>
//	</royale-config>
//
// The root element name is not checked. List elements replace earlier
// values unless append="true"; define entries always append.
func loadOverlay(fs afero.Fs, path string, d Dialect, rep diag.Reporter) []assignment {
	loc := diag.Location{Source: path}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		diag.ReportError(rep, diag.OvlUnreadable, loc, fmt.Sprintf("cannot read configuration file: %v", err))
		return nil
	}
	var root xmlNode
	if err := xml.Unmarshal(data, &root); err != nil {
		var syntaxErr *xml.SyntaxError
		if errors.As(err, &syntaxErr) {
			loc.Line = syntaxErr.Line
		}
		diag.ReportError(rep, diag.OvlMalformed, loc, fmt.Sprintf("malformed configuration file: %v", err))
		return nil
	}
	w := overlayWalker{path: path, dialect: d, rep: rep}
	for i := range root.Nodes {
		w.walk(&root.Nodes[i], "")
	}
	return w.out
}

type overlayWalker struct {
	path    string
	dialect Dialect
	rep     diag.Reporter
	out     []assignment
}

func (w *overlayWalker) walk(n *xmlNode, prefix string) {
	name := prefix + n.XMLName.Local
	loc := diag.Location{Source: w.path, Option: name}
	spec, status := lookupVar(name, w.dialect, false)
	switch status {
	case varNotApplicable:
		diag.ReportError(w.rep, diag.CfgNotApplicable, loc, fmt.Sprintf("'%s' is not supported by the %s configuration", name, w.dialect))
		return
	case varUnknown:
		if len(n.Nodes) == 0 {
			diag.ReportError(w.rep, diag.CfgUnknownVariable, loc, fmt.Sprintf("unknown configuration variable '%s'", name))
			return
		}
		for i := range n.Nodes {
			w.walk(&n.Nodes[i], name+".")
		}
		return
	}

	a := assignment{spec: spec, op: opSet, loc: loc}
	switch spec.kind {
	case kindBool, kindString:
		a.values = []string{strings.TrimSpace(n.Text)}
	case kindList:
		if n.attr("append") == "true" {
			a.op = opAppend
		}
		if len(n.Nodes) == 0 {
			if text := strings.TrimSpace(n.Text); text != "" {
				a.values = []string{text}
			}
		}
		for i := range n.Nodes {
			a.values = append(a.values, strings.TrimSpace(n.Nodes[i].Text))
		}
	case kindPair:
		a.op = opAppend
		nameNode, valueNode := n.child("name"), n.child("value")
		if nameNode == nil || valueNode == nil {
			diag.ReportError(w.rep, diag.CfgMissingValue, loc, fmt.Sprintf("'%s' needs <name> and <value>", name))
			return
		}
		a.values = []string{strings.TrimSpace(nameNode.Text) + "," + strings.TrimSpace(valueNode.Text)}
	}
	w.out = append(w.out, a)
}
