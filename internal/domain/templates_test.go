package domain

import "testing"

func TestTemplateByName(t *testing.T) {
	tmpl, ok := TemplateByName("Barbell Back Squat")
	if !ok {
		t.Fatal("Barbell Back Squat missing from catalog")
	}
	if tmpl.Category != "Legs" || len(tmpl.FormKeyPoints) == 0 {
		t.Errorf("template = %+v", tmpl)
	}

	if _, ok := TemplateByName("Underwater Basket Weaving"); ok {
		t.Error("unknown template reported as found")
	}
}

func TestTemplatesByCategory(t *testing.T) {
	legs := TemplatesByCategory("Legs")
	if len(legs) == 0 {
		t.Fatal("no Legs templates")
	}
	for _, tmpl := range legs {
		if tmpl.Category != "Legs" {
			t.Errorf("%s filed under %s", tmpl.Name, tmpl.Category)
		}
	}
}

func TestTemplatesReturnsCopy(t *testing.T) {
	first := Templates()
	first[0].Name = "mutated"
	if fresh := Templates(); fresh[0].Name == "mutated" {
		t.Error("Templates exposes the underlying catalog")
	}
}
