package feed

import "testing"

func TestSanitizeListPrecedence(t *testing.T) {
	input := "<p>Мы предлагаем:</p><ul><li>Опыт от года</li><li>Права категории B</li></ul><p>хвост</p>"
	got := Sanitize(&input)
	if got == nil || *got != "Опыт от года, Права категории B" {
		t.Fatalf("got %v", got)
	}
}

func TestSanitizeLineBreaks(t *testing.T) {
	input := "первое<br>второе<br/>третье"
	got := Sanitize(&input)
	if got == nil || *got != "первое, второе, третье" {
		t.Fatalf("got %v", got)
	}
}

func TestSanitizeStripsTags(t *testing.T) {
	input := "<p>Полный   <b>рабочий</b> день</p>"
	got := Sanitize(&input)
	if got == nil || *got != "Полный рабочий день" {
		t.Fatalf("got %v", got)
	}
}

func TestSanitizeEmptyIsAbsent(t *testing.T) {
	for _, input := range []string{"", "   ", "<p> </p>"} {
		v := input
		if got := Sanitize(&v); got != nil {
			t.Fatalf("input %q: want nil, got %q", input, *got)
		}
	}
	if Sanitize(nil) != nil {
		t.Fatal("nil input must stay nil")
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"просто текст",
		"первое<br>второе",
		"<ul><li>a</li><li>b</li></ul>",
		"  много   пробелов  ",
		"<p>Полный <b>рабочий</b> день</p>",
	}
	for _, input := range inputs {
		v := input
		once := Sanitize(&v)
		if once == nil {
			continue
		}
		twice := Sanitize(once)
		if twice == nil || *twice != *once {
			t.Fatalf("input %q: once=%q twice=%v", input, *once, twice)
		}
	}
}
