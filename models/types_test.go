package models

import "testing"

func TestParseModuleType(t *testing.T) {
	cases := map[string]ModuleType{
		"Reading":   ModuleReading,
		"reading":   ModuleReading,
		"1":         ModuleReading,
		" Writing ": ModuleWriting,
		"3":         ModuleListening,
		"SPEAKING":  ModuleSpeaking,
	}
	for in, want := range cases {
		got, ok := ParseModuleType(in)
		if !ok || got != want {
			t.Fatalf("ParseModuleType(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}
	if _, ok := ParseModuleType("grammar"); ok {
		t.Fatal("unknown module must not parse")
	}
	if ModuleSpeaking.ID() != 4 || ModuleReading.ID() != 1 {
		t.Fatal("module ids out of order")
	}
}

func TestParseTaskTypeAcceptsDisplayNames(t *testing.T) {
	got, ok := ParseTaskType("Filling Blanks")
	if !ok || got != TaskFillingBlanks {
		t.Fatalf("ParseTaskType display name = %q, %v", got, ok)
	}
	got, ok = ParseTaskType("mcq")
	if !ok || got != TaskMCQ {
		t.Fatalf("ParseTaskType wire tag = %q, %v", got, ok)
	}
	if _, ok := ParseTaskType("essay"); ok {
		t.Fatal("unknown task type must not parse")
	}
}

func TestNormalizeRole(t *testing.T) {
	if NormalizeRole(" SUPERADMIN ") != RoleSuperAdmin {
		t.Fatal("superadmin not normalized")
	}
	if NormalizeRole("editor") != RoleEditor {
		t.Fatal("editor not normalized")
	}
	if NormalizeRole("student") != RoleUser {
		t.Fatal("unknown role should fall back to User")
	}
}

func TestTaskPersisted(t *testing.T) {
	if (Task{}).Persisted() {
		t.Fatal("zero RemoteID is not persisted")
	}
	if !(Task{RemoteID: 3}).Persisted() {
		t.Fatal("positive RemoteID is persisted")
	}
}
