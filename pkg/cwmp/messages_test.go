package cwmp

import "testing"

func TestNewInformResponse(t *testing.T) {
	r := NewInformResponse()
	if r.MaxEnvelopes != 1 {
		t.Errorf("MaxEnvelopes = %d, want 1", r.MaxEnvelopes)
	}
}

func TestNewParameterNamesArrayType(t *testing.T) {
	tests := []struct {
		names []string
		want  string
	}{
		{nil, "xsd:string[0]"},
		{[]string{"a"}, "xsd:string[1]"},
		{[]string{"a", "b", "c"}, "xsd:string[3]"},
	}
	for _, tt := range tests {
		got := NewParameterNames(tt.names)
		if got.ArrayType != tt.want {
			t.Errorf("NewParameterNames(%v).ArrayType = %q, want %q", tt.names, got.ArrayType, tt.want)
		}
		if len(got.Names) != len(tt.names) {
			t.Errorf("NewParameterNames(%v).Names = %v", tt.names, got.Names)
		}
	}
}

func TestNewParameterValueListArrayType(t *testing.T) {
	values := []ParameterValueStruct{
		{Name: "Device.X", Value: AnySimpleType{Type: "xsd:string", Data: "y"}},
	}
	got := NewParameterValueList(values)
	want := "cwmp:ParameterValueStruct[1]"
	if got.ArrayType != want {
		t.Errorf("ArrayType = %q, want %q", got.ArrayType, want)
	}
}

func TestMessageMarkerInterface(t *testing.T) {
	var msgs = []Message{
		Inform{}, InformResponse{}, GetParameterValues{}, GetParameterValuesResponse{},
		SetParameterValues{}, SetParameterValuesResponse{}, AddObject{}, AddObjectResponse{},
		DeleteObject{}, DeleteObjectResponse{}, Reboot{}, RebootResponse{}, Fault{}, DummyInput{},
	}
	if len(msgs) == 0 {
		t.Fatal("expected at least one Message variant")
	}
}
