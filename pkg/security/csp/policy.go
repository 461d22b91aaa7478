// Package csp builds Content-Security-Policy header values.
package csp

import (
	"fmt"
	"strings"
)

// Header names.
const (
	HeaderEnforce    = "Content-Security-Policy"
	HeaderReportOnly = "Content-Security-Policy-Report-Only"
)

// directiveOrder fixes the output order so headers are stable.
var directiveOrder = []string{
	"default-src",
	"script-src-attr",
	"style-src",
	"frame-ancestors",
	"form-action",
	"base-uri",
	"object-src",
}

// Builder assembles a policy with chained calls.
//
//	policy := NewBuilder().
//	    DefaultSrc("'self'").
//	    StyleSrc("'self'", "'unsafe-inline'").
//	    Build()
//	// "default-src 'self'; style-src 'self' 'unsafe-inline'"
//
// A Builder is not safe for concurrent mutation; build once and share the
// string.
type Builder struct {
	directives map[string][]string
	reportOnly bool
}

// NewBuilder returns an empty policy.
func NewBuilder() *Builder {
	return &Builder{directives: make(map[string][]string)}
}

func (b *Builder) set(directive string, sources []string) *Builder {
	b.directives[directive] = sources
	return b
}

// DefaultSrc sets default-src, the fallback for other fetch directives.
func (b *Builder) DefaultSrc(sources ...string) *Builder { return b.set("default-src", sources) }

// ScriptSrcAttr sets script-src-attr, which governs inline event handlers.
func (b *Builder) ScriptSrcAttr(sources ...string) *Builder {
	return b.set("script-src-attr", sources)
}

// StyleSrc sets style-src.
func (b *Builder) StyleSrc(sources ...string) *Builder { return b.set("style-src", sources) }

// FrameAncestors sets frame-ancestors.
func (b *Builder) FrameAncestors(sources ...string) *Builder {
	return b.set("frame-ancestors", sources)
}

// FormAction sets form-action.
func (b *Builder) FormAction(sources ...string) *Builder { return b.set("form-action", sources) }

// BaseURI sets base-uri.
func (b *Builder) BaseURI(sources ...string) *Builder { return b.set("base-uri", sources) }

// ObjectSrc sets object-src.
func (b *Builder) ObjectSrc(sources ...string) *Builder { return b.set("object-src", sources) }

// ReportOnly switches the policy to report-only mode.
func (b *Builder) ReportOnly(enabled bool) *Builder {
	b.reportOnly = enabled
	return b
}

// Build renders the header value. Directives without sources are skipped.
func (b *Builder) Build() string {
	var parts []string
	for _, directive := range directiveOrder {
		if sources := b.directives[directive]; len(sources) > 0 {
			parts = append(parts, fmt.Sprintf("%s %s", directive, strings.Join(sources, " ")))
		}
	}
	return strings.Join(parts, "; ")
}

// HeaderName returns the header the policy belongs in.
func (b *Builder) HeaderName() string {
	if b.reportOnly {
		return HeaderReportOnly
	}
	return HeaderEnforce
}

// PagePolicy is the policy for the rendered posts page. The page carries an
// inline stylesheet and an inline onchange handler that submits the select
// form, and nothing else.
func PagePolicy() *Builder {
	return NewBuilder().
		DefaultSrc("'none'").
		ScriptSrcAttr("'unsafe-inline'").
		StyleSrc("'unsafe-inline'").
		FormAction("'self'").
		FrameAncestors("'none'").
		BaseURI("'none'").
		ObjectSrc("'none'")
}

// StrictPolicy is the policy for JSON and text endpoints.
func StrictPolicy() *Builder {
	return NewBuilder().
		DefaultSrc("'none'").
		FrameAncestors("'none'")
}
