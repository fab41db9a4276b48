package settings

import (
	"testing"
)

func TestNewCliParams(t *testing.T) {
	got := NewCliParams()
	want := Run{MinLogLevel: 0, InputPath: "-"}
	if *got != want {
		t.Errorf("NewCliParams() = %+v, want %+v", *got, want)
	}
}

func TestVersionInformationDefaults(t *testing.T) {
	if VersionInformation.BuildVersion == "" {
		t.Error("BuildVersion should have a default")
	}
	if CliBinaryName != "csvx" {
		t.Errorf("unexpected binary name %q", CliBinaryName)
	}
}
