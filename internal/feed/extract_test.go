package feed

import "testing"

func scalar(s string) Value { return Value{Kind: Scalar, Text: s} }

func object(fields map[string]Value) Value { return Value{Kind: Object, Fields: fields} }

func list(items ...Value) Value { return Value{Kind: List, Items: items} }

func TestExtractAddressNumberedBlocks(t *testing.T) {
	row := RawRow{
		"ADRESSORABOTI2": object(map[string]Value{
			"A2-REGION": scalar("Пермский край"),
			"A2-GOROD":  scalar("Пермь"),
			"A2-ULICA":  scalar("Ленина"),
			"A2-DOM":    scalar("10"),
		}),
		"ADRESSORABOTI5": object(map[string]Value{
			"A5-GOROD": scalar("Кунгур"),
			"A5-ULICA": scalar("Советская"),
		}),
	}
	got := ExtractAddress(row)
	want := "Пермский край, Пермь, Ленина, 10; Кунгур, Советская"
	if got == nil || *got != want {
		t.Fatalf("got %v want %q", got, want)
	}
}

func TestExtractAddressSingleBlock(t *testing.T) {
	row := RawRow{"ADRESSORABOTI": scalar("г. Пермь, ул. Мира, 1")}
	got := ExtractAddress(row)
	if got == nil || *got != "г. Пермь, ул. Мира, 1" {
		t.Fatalf("got %v", got)
	}
}

func TestExtractAddressAbsent(t *testing.T) {
	if got := ExtractAddress(RawRow{}); got != nil {
		t.Fatalf("got %v", got)
	}
}

func TestExtractPhoneShapes(t *testing.T) {
	cases := []struct {
		name string
		in   Value
		want string
	}{
		{"bare string", object(map[string]Value{"NOMER": scalar("2-33-44")}), "2-33-44"},
		{"scalar container", scalar("2-33-44"), "2-33-44"},
		{"tagged object", object(map[string]Value{"NOMER": object(map[string]Value{"@TIP": scalar("main")})}), ""},
		{"sequence", object(map[string]Value{"NOMER": list(scalar("2-33-44"), scalar("2-33-45"))}), "2-33-44, 2-33-45"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractPhone(tc.in, false, "")
			if tc.want == "" {
				if got != nil {
					t.Fatalf("want nil, got %q", *got)
				}
				return
			}
			if got == nil || *got != tc.want {
				t.Fatalf("got %v want %q", got, tc.want)
			}
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"international prefix", "+7 (912) 345-67-89", "89123456789"},
		{"bare seven", "79123456789", "89123456789"},
		{"bare ten digits", "9123456789", "89123456789"},
		{"doubled city code stripped", "8 (342) 342-23-34-455", "83422334455"},
		{"district code kept", "8 (342) 342-41-55-667", "83423424155667"},
		{"short local untouched", "2-33-44", "23344"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizePhone(tc.in, "342"); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestExtractScheduleNested(t *testing.T) {
	nested := object(map[string]Value{
		"SMENA":        scalar("первая"),
		"DNIRABOTI":    scalar("пн-пт"),
		"VREMYARABOTI": scalar("09:00-18:00"),
	})
	got := ExtractSchedule(nested, Value{})
	want := "смена: первая, дни работы: пн-пт, время работы: 09:00-18:00"
	if got == nil || *got != want {
		t.Fatalf("got %v want %q", got, want)
	}

	partial := object(map[string]Value{"DNIRABOTI": scalar("пн-пт")})
	got = ExtractSchedule(partial, Value{})
	if got == nil || *got != "дни работы: пн-пт" {
		t.Fatalf("partial: got %v", got)
	}
}

func TestExtractScheduleLegacyPairs(t *testing.T) {
	legacy := list(scalar("пн/пт"), scalar("09:00-18:00"), scalar("сб/вс"), scalar("10:00-16:00"))
	got := ExtractSchedule(Value{}, legacy)
	want := "пн/пт 09:00-18:00, есть ещё сб/вс 10:00-16:00"
	if got == nil || *got != want {
		t.Fatalf("got %v want %q", got, want)
	}
}

func TestExtractScheduleNestedWinsOverLegacy(t *testing.T) {
	nested := object(map[string]Value{"SMENA": scalar("вторая")})
	legacy := list(scalar("пн/пт"), scalar("09:00-18:00"))
	got := ExtractSchedule(nested, legacy)
	if got == nil || *got != "смена: вторая" {
		t.Fatalf("got %v", got)
	}
}

func TestExtractScheduleAbsent(t *testing.T) {
	if got := ExtractSchedule(Value{}, Value{}); got != nil {
		t.Fatalf("got %v", got)
	}
}
