package domain

import (
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer renders grouped digits for byte counts in diagnostics.
var printer = message.NewPrinter(language.English)

// Summary renders a compact diagnostic view of the group: name, priority,
// and the per-source-type size totals. The module and chunk sets are
// deliberately omitted; on large builds they hold thousands of entries and
// would drown the rest of a log line.
func (mg *ModuleGroup) Summary() string {
	var b strings.Builder
	printer.Fprintf(&b, "ModuleGroup(name=%q, priority=%v", mg.Name, mg.CacheGroupPriority)

	types := make([]SourceType, 0, len(mg.Sizes))
	for ty := range mg.Sizes {
		types = append(types, ty)
	}
	slices.Sort(types)
	for _, ty := range types {
		printer.Fprintf(&b, ", %s=%.1f bytes", string(ty), mg.Sizes[ty])
	}

	b.WriteString(")")
	return b.String()
}
