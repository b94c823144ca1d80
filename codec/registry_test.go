package codec

import (
	"testing"
)

type fakeCodec struct {
	name string
	uid  string
}

func (c *fakeCodec) Encode(params EncodeParams) ([]byte, error) {
	return []byte{0xFF, 0xD8, 0xFF, 0xD9}, nil
}

func (c *fakeCodec) UID() string  { return c.uid }
func (c *fakeCodec) Name() string { return c.name }

func TestRegistryRegisterAndGet(t *testing.T) {
	r := &Registry{codecs: make(map[string]Codec)}
	c := &fakeCodec{name: "fake", uid: "1.2.3.4"}
	r.Register(c)

	byName, err := r.Get("fake")
	if err != nil {
		t.Fatalf("Get by name failed: %v", err)
	}
	if byName != Codec(c) {
		t.Error("Get by name returned wrong codec")
	}

	byUID, err := r.Get("1.2.3.4")
	if err != nil {
		t.Fatalf("Get by UID failed: %v", err)
	}
	if byUID != Codec(c) {
		t.Error("Get by UID returned wrong codec")
	}
}

func TestRegistryGetNotFound(t *testing.T) {
	r := &Registry{codecs: make(map[string]Codec)}
	_, err := r.Get("missing")
	if err != ErrCodecNotFound {
		t.Errorf("err = %v, want ErrCodecNotFound", err)
	}
}

func TestRegistryListDeduplicates(t *testing.T) {
	r := &Registry{codecs: make(map[string]Codec)}
	r.Register(&fakeCodec{name: "a", uid: "1"})
	r.Register(&fakeCodec{name: "b", uid: "2"})

	list := r.List()
	if len(list) != 2 {
		t.Errorf("List() returned %d codecs, want 2", len(list))
	}
}

func TestBaseOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		quality int
		wantErr bool
	}{
		{"TooLow", 0, true},
		{"TooHigh", 101, true},
		{"Min", 1, false},
		{"Max", 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &BaseOptions{Quality: tt.quality}
			if err := o.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
