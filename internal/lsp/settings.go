package lsp

import (
	"encoding/json"
	"path/filepath"

	"aslsp/internal/project"
)

func (s *Server) handleDidChangeConfiguration(msg *rpcMessage) error {
	if len(msg.Params) == 0 {
		return nil
	}
	var params didChangeConfigurationParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return nil
	}
	if s.applySettings(params.Settings) {
		s.refresh()
	}
	return nil
}

// applySettings stores the aslsp section and reports whether anything
// changed.
func (s *Server) applySettings(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var settings lspSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		s.log.Warn("ignoring malformed settings", "err", err)
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := false
	if lib := settings.ASLSP.FrameworkLib; lib != nil && *lib != s.frameworkLib {
		s.frameworkLib = *lib
		changed = true
	}
	if p := settings.ASLSP.Project; p != nil {
		desc, err := p.description(s.workspaceRoot)
		if err != nil {
			s.log.Warn("ignoring project settings", "err", err)
			return changed
		}
		s.override = &desc
		changed = true
	}
	return changed
}

func (p *projectSettings) description(root string) (project.Description, error) {
	kind, err := project.ParseKind(p.Type)
	if err != nil {
		return project.Description{}, err
	}
	desc := project.Description{
		ConfigName:        p.Config,
		Kind:              kind,
		Targets:           p.Targets,
		CompilerOptions:   p.CompilerOptions,
		AdditionalOptions: p.AdditionalOptions,
	}
	if desc.ConfigName == "" {
		desc.ConfigName = project.DefaultConfigName
	}
	for _, f := range p.Files {
		if !filepath.IsAbs(f) && root != "" {
			f = filepath.Join(root, filepath.FromSlash(f))
		}
		desc.Files = append(desc.Files, f)
	}
	return desc.Clone(), nil
}
