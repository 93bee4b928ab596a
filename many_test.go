package blake2many_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/codahale/blake2many"
	"github.com/codahale/blake2many/internal/testdata"
)

func TestHashMany(t *testing.T) {
	drbg := testdata.New("blake2many hash many")

	params := []*blake2many.Params{
		nil,
		{Size: 32},
		{Size: 20, Salt: []byte("salt")},
		{Personal: []byte("personal")},
		{Tree: &blake2many.Tree{FanOut: 2, MaxDepth: 2, NodeOffset: 1, InnerSize: 64, LastNode: true}},
	}

	jobs := make([]*blake2many.HashJob, 50)
	for i := range jobs {
		jobs[i] = &blake2many.HashJob{Params: params[i%len(params)], Input: drbg.Data(drbg.Intn(1500))}
	}

	for _, degree := range []int{0, 1, 2, 4, 8} {
		t.Run(fmt.Sprintf("x%d", degree), func(t *testing.T) {
			for _, job := range jobs {
				job.Sum = nil
			}

			if err := blake2many.HashMany(jobs, degree); err != nil {
				t.Fatal(err)
			}

			for i, job := range jobs {
				want, err := blake2many.Sum(job.Params, job.Input)
				if err != nil {
					t.Fatal(err)
				}
				if !bytes.Equal(job.Sum, want) {
					t.Errorf("job %d: Sum = %x, want = %x", i, job.Sum, want)
				}
			}
		})
	}
}

func TestHashMany_ReusesSum(t *testing.T) {
	buf := make([]byte, 0, blake2many.Size)
	jobs := []*blake2many.HashJob{{Input: []byte("abc"), Sum: buf}}

	if err := blake2many.HashMany(jobs, 1); err != nil {
		t.Fatal(err)
	}

	if &jobs[0].Sum[0] != &buf[:1][0] {
		t.Error("HashMany did not reuse Sum")
	}
	if want := blake2many.Sum512([]byte("abc")); !bytes.Equal(jobs[0].Sum, want[:]) {
		t.Errorf("Sum = %x, want = %x", jobs[0].Sum, want)
	}
}

func TestHashMany_Invalid(t *testing.T) {
	jobs := []*blake2many.HashJob{
		{Input: []byte("fine")},
		{Params: &blake2many.Params{Personal: make([]byte, 17)}, Input: []byte("not fine")},
	}

	if err := blake2many.HashMany(jobs, 0); !errors.Is(err, blake2many.ErrInvalidPersonal) {
		t.Errorf("HashMany() = %v, want = %v", err, blake2many.ErrInvalidPersonal)
	}
	if jobs[0].Sum != nil {
		t.Error("HashMany hashed a job before failing")
	}
}

func TestUpdateMany(t *testing.T) {
	drbg := testdata.New("blake2many update many")

	for _, degree := range []int{0, 1, 2, 4, 8} {
		t.Run(fmt.Sprintf("x%d", degree), func(t *testing.T) {
			const count = 11
			many := make([]*blake2many.Hasher, count)
			single := make([]*blake2many.Hasher, count)
			for i := range many {
				many[i], single[i] = blake2many.New512(), blake2many.New512()
			}

			for range 8 {
				inputs := make([][]byte, count)
				for i := range inputs {
					inputs[i] = drbg.Data(drbg.Intn(400))
					_, _ = single[i].Write(inputs[i])
				}
				blake2many.UpdateMany(many, inputs, degree)

				for i := range many {
					if got, want := many[i].Sum(nil), single[i].Sum(nil); !bytes.Equal(got, want) {
						t.Fatalf("hasher %d: Sum() = %x, want = %x", i, got, want)
					}
				}
			}
		})
	}
}

func TestUpdateMany_Mismatched(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("did not panic")
		}
	}()

	blake2many.UpdateMany([]*blake2many.Hasher{blake2many.New512()}, nil, 0)
}

func BenchmarkHashMany(b *testing.B) {
	for _, length := range lengths[:4] {
		for _, degree := range []int{1, 2, 4, 8} {
			b.Run(fmt.Sprintf("%s/x%d", length.name, degree), func(b *testing.B) {
				jobs := make([]*blake2many.HashJob, 64)
				for i := range jobs {
					jobs[i] = &blake2many.HashJob{Input: make([]byte, length.n), Sum: make([]byte, 0, blake2many.Size)}
				}
				b.ReportAllocs()
				b.SetBytes(int64(len(jobs) * length.n))
				for b.Loop() {
					_ = blake2many.HashMany(jobs, degree)
				}
			})
		}
	}
}
