package feed

import (
	"fmt"
	"regexp"
	"strings"

	"jobwall/internal/util"
)

const maxAddressBlocks = 8

var addressComponents = []string{"-REGION", "-GOROD", "-ULICA", "-DOM"}

// ExtractAddress accepts either a single ADRESSORABOTI block or up to
// eight independently-numbered blocks representing multiple work
// locations. Component sub-tags are matched by suffix; present components
// join with ", " per block, non-empty blocks join with "; " in index
// order.
func ExtractAddress(row RawRow) *string {
	blocks := make([]string, 0, maxAddressBlocks+1)
	if block := formatAddressBlock(row["ADRESSORABOTI"]); block != "" {
		blocks = append(blocks, block)
	}
	for i := 1; i <= maxAddressBlocks; i++ {
		if block := formatAddressBlock(row[fmt.Sprintf("ADRESSORABOTI%d", i)]); block != "" {
			blocks = append(blocks, block)
		}
	}
	return util.PtrOrNil(strings.Join(blocks, "; "))
}

func formatAddressBlock(v Value) string {
	switch v.Kind {
	case Scalar:
		return util.CollapseSpaces(v.Text)
	case Object:
		parts := make([]string, 0, len(addressComponents))
		for _, suffix := range addressComponents {
			if text := componentBySuffix(v, suffix); text != "" {
				parts = append(parts, text)
			}
		}
		if len(parts) == 0 {
			return util.CollapseSpaces(v.Text)
		}
		return strings.Join(parts, ", ")
	case List:
		parts := make([]string, 0, len(v.Items))
		for _, item := range v.Items {
			if block := formatAddressBlock(item); block != "" {
				parts = append(parts, block)
			}
		}
		return strings.Join(parts, "; ")
	}
	return ""
}

func componentBySuffix(v Value, suffix string) string {
	for name, field := range v.Fields {
		if strings.HasSuffix(name, suffix) {
			return util.CollapseSpaces(field.ScalarText())
		}
	}
	return ""
}

// ExtractPhone reads a phone container whose NOMER sub-field may be a bare
// string, a single tagged object, or a sequence of either. Multiple
// numbers join with ", ". In strict mode each number additionally goes
// through NormalizePhone.
func ExtractPhone(v Value, strict bool, areaCode string) *string {
	if v.Kind == Absent {
		return nil
	}
	numbers := v
	if v.Kind == Object {
		if f := v.Field("NOMER"); f.Kind != Absent {
			numbers = f
		}
	}
	parts := make([]string, 0, 2)
	for _, item := range numbers.ListItems() {
		text := util.CollapseSpaces(item.ScalarText())
		if text == "" {
			continue
		}
		if strict {
			text = NormalizePhone(text, areaCode)
		}
		if text != "" {
			parts = append(parts, text)
		}
	}
	return util.PtrOrNil(strings.Join(parts, ", "))
}

// Two-digit intra-region codes that may legitimately follow a doubled
// area-code segment. Anything else after the doubled segment means the
// upstream operator duplicated the city code and the duplicate is
// stripped.
var districtCodes = map[string]struct{}{
	"41": {}, "42": {}, "43": {}, "44": {}, "45": {}, "46": {}, "47": {},
	"48": {}, "49": {}, "51": {}, "52": {}, "53": {}, "54": {}, "55": {},
	"56": {}, "57": {}, "58": {}, "59": {}, "61": {}, "62": {}, "63": {},
	"64": {}, "65": {}, "68": {}, "69": {},
}

// NormalizePhone canonicalizes the international +7 prefix to the domestic
// 8, pads bare 10-digit numbers, and resolves the doubled home-area-code
// case via the district-code table.
func NormalizePhone(input, areaCode string) string {
	var b strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	n := b.String()
	if n == "" {
		return ""
	}

	switch {
	case len(n) == 11 && strings.HasPrefix(n, "7"):
		n = "8" + n[1:]
	case len(n) == 10:
		n = "8" + n
	}

	if areaCode != "" {
		doubled := "8" + areaCode + areaCode
		if len(n) == len(doubled)+7 && strings.HasPrefix(n, doubled) {
			next := n[len(doubled) : len(doubled)+2]
			if _, ok := districtCodes[next]; !ok {
				n = "8" + n[1+len(areaCode):]
			}
		}
	}
	return n
}

var reTimeRange = regexp.MustCompile(`^\d{1,2}:\d{2}-\d{1,2}:\d{2}$`)

// ExtractSchedule composes the schedule string. The nested new-schema
// block wins over the legacy flat one when both are present.
func ExtractSchedule(nested, legacy Value) *string {
	if s := scheduleFromNested(nested); s != "" {
		return &s
	}
	if s := scheduleFromLegacy(legacy); s != "" {
		return &s
	}
	return nil
}

func scheduleFromNested(v Value) string {
	switch v.Kind {
	case Scalar:
		return util.CollapseSpaces(v.Text)
	case Object:
		parts := make([]string, 0, 3)
		if s := util.CollapseSpaces(v.Field("SMENA").ScalarText()); s != "" {
			parts = append(parts, "смена: "+s)
		}
		if s := util.CollapseSpaces(v.Field("DNIRABOTI").ScalarText()); s != "" {
			parts = append(parts, "дни работы: "+s)
		}
		if s := util.CollapseSpaces(v.Field("VREMYARABOTI").ScalarText()); s != "" {
			parts = append(parts, "время работы: "+s)
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

// The legacy flat schedule is a run of alternating tokens: a day range
// (recognized by "/") followed by a time range (HH:MM-HH:MM). Each pair
// becomes one phrase; extra shifts join with ", есть ещё ".
func scheduleFromLegacy(v Value) string {
	tokens := make([]string, 0, 4)
	for _, item := range v.ListItems() {
		if t := util.CollapseSpaces(item.ScalarText()); t != "" {
			tokens = append(tokens, t)
		}
	}
	if len(tokens) == 0 {
		return ""
	}

	phrases := make([]string, 0, 2)
	for i := 0; i < len(tokens); i++ {
		if !strings.Contains(tokens[i], "/") {
			continue
		}
		phrase := tokens[i]
		if i+1 < len(tokens) && reTimeRange.MatchString(tokens[i+1]) {
			phrase += " " + tokens[i+1]
			i++
		}
		phrases = append(phrases, phrase)
	}
	if len(phrases) == 0 {
		return strings.Join(tokens, " ")
	}
	return strings.Join(phrases, ", есть ещё ")
}
