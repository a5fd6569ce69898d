package importer

import (
	"strconv"
	"strings"
)

// Canonical field names produced by MapColumns. Downstream code only ever
// sees these keys; raw spreadsheet headers stop here.
const (
	FieldFullName            = "full_name"
	FieldEmail               = "email"
	FieldDepartment          = "department"
	FieldStation             = "station"
	FieldAssetTag            = "asset_tag"
	FieldEquipmentKind       = "equipment_kind"
	FieldModel               = "model"
	FieldSerialNo            = "serial_no"
	FieldRAM                 = "ram"
	FieldStorage             = "storage"
	FieldOS                  = "os"
	FieldPurchaseDate        = "purchase_date"
	FieldLastMaintenanceDate = "last_maintenance_date"
	FieldNextMaintenanceDate = "next_maintenance_date"
)

// aliasEntry keeps declaration order: the first alias present with a
// non-empty value wins.
type aliasEntry struct {
	field   string
	aliases []string
}

// DefaultAliases maps canonical fields to accepted spreadsheet headers,
// case-insensitive, in priority order. Collected from the header conventions
// of the department spreadsheets this system imports.
var DefaultAliases = []aliasEntry{
	{FieldFullName, []string{"Full Name", "Name", "User Name", "Employee"}},
	{FieldEmail, []string{"Email", "Email Address", "Mail"}},
	{FieldDepartment, []string{"Department", "Dept", "Directorate"}},
	{FieldStation, []string{"Station", "Location", "Duty Station", "Office"}},
	{FieldAssetTag, []string{"Asset Tag", "Tag", "Tag No", "Asset Number"}},
	{FieldEquipmentKind, []string{"Equipment", "Equipment Type", "Device Type", "Kind", "Category"}},
	{FieldModel, []string{"Model", "Device Model", "Make and Model"}},
	{FieldSerialNo, []string{"Serial No", "Serial Number", "Serial", "S/N", "SN"}},
	{FieldRAM, []string{"RAM", "Memory"}},
	{FieldStorage, []string{"Storage", "HDD", "Disk", "Hard Disk"}},
	{FieldOS, []string{"OS", "Operating System"}},
	{FieldPurchaseDate, []string{"Purchase Date", "Date Purchased", "Date of Purchase"}},
	{FieldLastMaintenanceDate, []string{"Last Maintenance", "Last Maintenance Date", "Last Service"}},
	{FieldNextMaintenanceDate, []string{"Next Maintenance", "Next Maintenance Date", "Next Service"}},
}

// MappedRow is the validated intermediate record for one spreadsheet row:
// canonical field name -> trimmed string value. Fields absent from the source
// row are absent from the map.
type MappedRow map[string]string

// Get returns the value for a canonical field, "" if absent.
func (m MappedRow) Get(field string) string {
	return m[field]
}

// MapColumns normalizes one raw row (header -> scalar cell) into a MappedRow.
// Header matching is case-insensitive on trimmed header text. Unmatched
// canonical fields are simply absent — never an error. Pure function.
func MapColumns(row map[string]interface{}, table []aliasEntry) MappedRow {
	byHeader := make(map[string]string, len(row))
	for k, v := range row {
		byHeader[strings.ToLower(strings.TrimSpace(k))] = cellString(v)
	}

	out := make(MappedRow)
	for _, entry := range table {
		for _, alias := range entry.aliases {
			if v, ok := byHeader[strings.ToLower(alias)]; ok && v != "" {
				out[entry.field] = v
				break
			}
		}
	}
	return out
}

// cellString renders a scalar cell as a trimmed string. Floats drop trailing
// zeros so serial-number cells read as "12345", not "12345.000000".
func cellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
