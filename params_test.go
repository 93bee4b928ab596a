package blake2many_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/codahale/blake2many"
	"github.com/codahale/blake2many/internal/testdata"
	simd "github.com/minio/blake2b-simd"
)

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name   string
		params *blake2many.Params
		want   error
	}{
		{"nil", nil, nil},
		{"zero", &blake2many.Params{}, nil},
		{"size 1", &blake2many.Params{Size: 1}, nil},
		{"negative size", &blake2many.Params{Size: -1}, blake2many.ErrInvalidSize},
		{"large size", &blake2many.Params{Size: 65}, blake2many.ErrInvalidSize},
		{"full salt", &blake2many.Params{Salt: make([]byte, 16)}, nil},
		{"long salt", &blake2many.Params{Salt: make([]byte, 17)}, blake2many.ErrInvalidSalt},
		{"long personal", &blake2many.Params{Personal: make([]byte, 17)}, blake2many.ErrInvalidPersonal},
		{"zero depth", &blake2many.Params{Tree: &blake2many.Tree{}}, blake2many.ErrInvalidTree},
		{"large inner size", &blake2many.Params{Tree: &blake2many.Tree{MaxDepth: 2, InnerSize: 65}}, blake2many.ErrInvalidTree},
		{"tree", &blake2many.Params{Tree: &blake2many.Tree{FanOut: 4, MaxDepth: 2, InnerSize: 64}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.Validate(); !errors.Is(got, tt.want) {
				t.Errorf("Validate() = %v, want = %v", got, tt.want)
			}
		})
	}
}

func TestParams_Equivalence(t *testing.T) {
	drbg := testdata.New("blake2many params")

	tests := []struct {
		name   string
		params blake2many.Params
		config simd.Config
	}{
		{
			name:   "salt",
			params: blake2many.Params{Size: 64, Salt: []byte("yellow submarine")},
			config: simd.Config{Size: 64, Salt: []byte("yellow submarine")},
		},
		{
			name:   "short salt and personal",
			params: blake2many.Params{Size: 48, Salt: []byte("salt"), Personal: []byte("me")},
			config: simd.Config{Size: 48, Salt: []byte("salt"), Person: []byte("me")},
		},
		{
			name:   "personal",
			params: blake2many.Params{Size: 32, Personal: []byte("blake2many tests")},
			config: simd.Config{Size: 32, Person: []byte("blake2many tests")},
		},
		{
			name: "leaf",
			params: blake2many.Params{Size: 64, Tree: &blake2many.Tree{
				FanOut: 4, MaxDepth: 2, LeafLength: 4096, NodeOffset: 3, InnerSize: 64,
			}},
			config: simd.Config{Size: 64, Tree: &simd.Tree{
				Fanout: 4, MaxDepth: 2, LeafSize: 4096, NodeOffset: 3, InnerHashSize: 64,
			}},
		},
		{
			name: "last root",
			params: blake2many.Params{Size: 64, Tree: &blake2many.Tree{
				FanOut: 4, MaxDepth: 2, LeafLength: 4096, NodeDepth: 1, InnerSize: 64, LastNode: true,
			}},
			config: simd.Config{Size: 64, Tree: &simd.Tree{
				Fanout: 4, MaxDepth: 2, LeafSize: 4096, NodeDepth: 1, InnerHashSize: 64, IsLastNode: true,
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, n := range []int{0, 1, 127, 128, 129, 1000} {
				input := drbg.Data(n)

				got, err := blake2many.Sum(&tt.params, input)
				if err != nil {
					t.Fatal(err)
				}

				h, err := simd.New(&tt.config)
				if err != nil {
					t.Fatal(err)
				}
				_, _ = h.Write(input)

				if want := h.Sum(nil); !bytes.Equal(got, want) {
					t.Errorf("len=%d: Sum() = %x, want = %x", n, got, want)
				}
			}
		})
	}
}

func TestParams_LastNode(t *testing.T) {
	input := []byte("node")
	inner := blake2many.Params{Tree: &blake2many.Tree{MaxDepth: 2}}
	last := blake2many.Params{Tree: &blake2many.Tree{MaxDepth: 2, LastNode: true}}

	a, err := blake2many.Sum(&inner, input)
	if err != nil {
		t.Fatal(err)
	}
	b, err := blake2many.Sum(&last, input)
	if err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(a, b) {
		t.Error("LastNode did not change the digest")
	}
}
