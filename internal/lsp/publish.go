package lsp

import (
	"fortio.org/safecast"

	"aslsp/internal/diag"
)

const diagnosticSource = "aslsp"

// publish sends problems grouped by document. Problems without a file go to
// the manifest. Documents published before but absent now are cleared.
func (s *Server) publish(manifestPath string, problems []diag.Diagnostic) {
	manifestURI := pathToURI(manifestPath)
	byURI := make(map[string][]lspDiagnostic)
	order := make([]string, 0, 2)
	for _, d := range problems {
		uri := manifestURI
		if d.Primary.Source != "" && d.Primary.Source != diag.CommandLine {
			uri = pathToURI(d.Primary.Source)
		}
		if uri == "" {
			continue
		}
		if _, seen := byURI[uri]; !seen {
			order = append(order, uri)
		}
		if len(byURI[uri]) >= s.maxDiagnostics {
			continue
		}
		byURI[uri] = append(byURI[uri], toLSPDiagnostic(d))
	}

	s.mu.Lock()
	var stale []string
	for uri := range s.published {
		if _, ok := byURI[uri]; !ok {
			stale = append(stale, uri)
			delete(s.published, uri)
		}
	}
	for _, uri := range order {
		s.published[uri] = struct{}{}
	}
	s.mu.Unlock()

	for _, uri := range stale {
		s.sendPublish(uri, nil)
	}
	for _, uri := range order {
		s.sendPublish(uri, byURI[uri])
	}
}

func (s *Server) clearPublished() {
	s.mu.Lock()
	uris := make([]string, 0, len(s.published))
	for uri := range s.published {
		uris = append(uris, uri)
	}
	s.published = make(map[string]struct{})
	s.mu.Unlock()
	for _, uri := range uris {
		s.sendPublish(uri, nil)
	}
}

func (s *Server) sendPublish(uri string, list []lspDiagnostic) {
	if list == nil {
		list = []lspDiagnostic{}
	}
	if err := s.sendNotification("textDocument/publishDiagnostics", publishDiagnosticsParams{
		URI:         uri,
		Diagnostics: list,
	}); err != nil {
		s.log.Warn("failed to publish diagnostics", "uri", uri, "err", err)
	}
}

func toLSPDiagnostic(d diag.Diagnostic) lspDiagnostic {
	var line uint32
	if d.Primary.Line > 0 {
		if l, err := safecast.Conv[uint32](d.Primary.Line - 1); err == nil {
			line = l
		}
	}
	msg := d.Message
	if d.Primary.Option != "" && d.Primary.Source == diag.CommandLine {
		msg += " (" + d.Primary.Option + ")"
	}
	return lspDiagnostic{
		Range: lspRange{
			Start: position{Line: line},
			End:   position{Line: line},
		},
		Severity: lspSeverity(d.Severity),
		Code:     d.Code.ID(),
		Source:   diagnosticSource,
		Message:  msg,
	}
}

func lspSeverity(sev diag.Severity) int {
	switch sev {
	case diag.SevError:
		return 1
	case diag.SevWarning:
		return 2
	}
	return 3
}
