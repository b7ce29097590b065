package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// command-line and variable problems
	CfgInfo            Code = 1000
	CfgUnknownVariable Code = 1001
	CfgMissingValue    Code = 1002
	CfgBadValue        Code = 1003
	CfgUndefinedToken  Code = 1004
	CfgBadAppend       Code = 1005
	CfgMissingTheme    Code = 1006
	CfgNotApplicable   Code = 1007
	CfgWorkspaceClosed Code = 1008

	// overlay configuration files
	OvlInfo       Code = 2000
	OvlUnreadable Code = 2001
	OvlMalformed  Code = 2002

	// target settings
	TgtInfo       Code = 3000
	TgtNoSettings Code = 3001

	// project manifest
	PrjInfo         Code = 4000
	PrjBadManifest  Code = 4001
	PrjUnknownKind  Code = 4002
	PrjBadOptionKey Code = 4003
)

var codeDescription = map[Code]string{
	UnknownCode:        "Unknown error",
	CfgInfo:            "Configuration information",
	CfgUnknownVariable: "Unknown configuration variable",
	CfgMissingValue:    "Missing value for configuration variable",
	CfgBadValue:        "Invalid value for configuration variable",
	CfgUndefinedToken:  "Undefined configuration token",
	CfgBadAppend:       "Append is only allowed for list variables",
	CfgMissingTheme:    "Theme file not found",
	CfgNotApplicable:   "Variable not supported by this configuration",
	CfgWorkspaceClosed: "Compiler workspace is closed",
	OvlInfo:            "Overlay information",
	OvlUnreadable:      "Overlay configuration file could not be read",
	OvlMalformed:       "Overlay configuration file is malformed",
	TgtInfo:            "Target information",
	TgtNoSettings:      "Target settings unavailable",
	PrjInfo:            "Project information",
	PrjBadManifest:     "Project manifest could not be decoded",
	PrjUnknownKind:     "Unknown project type",
	PrjBadOptionKey:    "Unsupported compiler option value",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("OVL%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("TGT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
