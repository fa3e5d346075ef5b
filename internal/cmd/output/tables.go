package output

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/agentstation/providerhub/pkg/catalogs"
	"github.com/agentstation/providerhub/pkg/registry"
)

// ProvidersTable lists provider metadata. Wide adds the base URL and
// required fields.
func ProvidersTable(providers []registry.ProviderMetadata, wide bool) Data {
	headers := []string{"ID", "NAME", "MODELS", "CONFIGURED"}
	aligns := []Align{AlignLeft, AlignLeft, AlignLeft, AlignCenter}
	if wide {
		headers = append(headers, "BASE URL", "REQUIRES", "DESCRIPTION")
		aligns = append(aligns, AlignLeft, AlignLeft, AlignLeft)
	}

	rows := make([][]string, 0, len(providers))
	for _, p := range providers {
		row := []string{p.ID.String(), p.LocalizedName, p.ModelSelectionType.String(), check(p.Configured)}
		if wide {
			row = append(row, p.BaseURLDefault, strings.Join(p.RequiredFields, ","), p.LocalizedDescription)
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows, ColumnAlignment: aligns}
}

// ModelsTable lists models. Wide adds the description.
func ModelsTable(models []catalogs.ModelInfo, wide bool) Data {
	headers := []string{"PROVIDER", "ID", "NAME", "CONTEXT"}
	aligns := []Align{AlignLeft, AlignLeft, AlignLeft, AlignRight}
	if wide {
		headers = append(headers, "DESCRIPTION")
		aligns = append(aligns, AlignLeft)
	}

	rows := make([][]string, 0, len(models))
	for _, m := range models {
		ctx := ""
		if m.ContextLength > 0 {
			ctx = strconv.Itoa(m.ContextLength)
		}
		row := []string{m.Provider.String(), m.ID, m.Name, ctx}
		if wide {
			row = append(row, m.Description)
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows, ColumnAlignment: aligns}
}

// CredentialsTable lists credential keys in sorted order with secrets masked.
func CredentialsTable(creds catalogs.Credentials) Data {
	masked := creds.Masked()
	keys := make([]string, 0, len(masked))
	for k := range masked {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, toString(masked[k])})
	}
	return Data{Headers: []string{"KEY", "VALUE"}, Rows: rows}
}

// ErrorsTable lists fetch errors by provider in sorted order.
func ErrorsTable(errs map[catalogs.ProviderID]string) Data {
	ids := make([]string, 0, len(errs))
	for id := range errs {
		ids = append(ids, id.String())
	}
	sort.Strings(ids)

	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, []string{id, errs[catalogs.ProviderID(id)]})
	}
	return Data{Headers: []string{"PROVIDER", "ERROR"}, Rows: rows}
}

func check(ok bool) string {
	if ok {
		return "✓"
	}
	return ""
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
