package quill_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/quillang/quill"
)

var initProbeCount uint32

func init() {
	quill.RegisterClass("InitProbe", quill.ClassDef{
		Parents: []string{"Basic"},
		Populate: func(vm *quill.VM, class *quill.Object) error {
			atomic.AddUint32(&initProbeCount, 1)
			class.SetOwnAttr(quill.Intern("probe"), vm.NewNumber(1))
			return nil
		},
	})
	quill.RegisterClass("InitPoison", quill.ClassDef{
		Parents: []string{"Basic"},
		Populate: func(vm *quill.VM, class *quill.Object) error {
			return errors.New("deliberate failure")
		},
	})
}

func TestClassInitOnce(t *testing.T) {
	atomic.StoreUint32(&initProbeCount, 0)
	vm := quill.NewVM()
	const callers = 16
	classes := make([]*quill.Object, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		i := i
		go func() {
			defer wg.Done()
			c, err := vm.ClassFor("InitProbe")
			if err != nil {
				t.Error(err)
				return
			}
			classes[i] = c
		}()
	}
	wg.Wait()
	if n := atomic.LoadUint32(&initProbeCount); n != 1 {
		t.Errorf("population ran %d times, want 1", n)
	}
	for i := 1; i < callers; i++ {
		if classes[i] != classes[0] {
			t.Fatalf("caller %d received a different class object", i)
		}
	}
	c, err := vm.ClassFor("InitProbe")
	if err != nil {
		t.Fatal(err)
	}
	if c != classes[0] {
		t.Error("later request received a different class object")
	}
}

func TestClassInitPoisoned(t *testing.T) {
	vm := quill.NewVM()
	_, err := vm.ClassFor("InitPoison")
	var ie *quill.InitializationError
	if !errors.As(err, &ie) {
		t.Fatalf("want InitializationError, got %v", err)
	}
	if ie.Class != "InitPoison" {
		t.Errorf("error names class %q", ie.Class)
	}
	// The entry stays poisoned; there is no retry.
	_, err = vm.ClassFor("InitPoison")
	if !errors.As(err, &ie) {
		t.Errorf("second request: want InitializationError, got %v", err)
	}
}

func TestClassUnregistered(t *testing.T) {
	vm := quill.NewVM()
	_, err := vm.ClassFor("NoSuchClass")
	var ie *quill.InitializationError
	if !errors.As(err, &ie) {
		t.Errorf("want InitializationError, got %v", err)
	}
}

func TestClassPerVM(t *testing.T) {
	vm1 := quill.NewVM()
	vm2 := quill.NewVM()
	c1, err := vm1.ClassFor("Number")
	if err != nil {
		t.Fatal(err)
	}
	c2, err := vm2.ClassFor("Number")
	if err != nil {
		t.Fatal(err)
	}
	if c1 == c2 {
		t.Error("independent VMs share a class object")
	}
}

func TestRootSelfParented(t *testing.T) {
	vm := quill.NewVM()
	root, err := vm.ClassFor("Pristine")
	if err != nil {
		t.Fatal(err)
	}
	ps := root.Parents()
	if len(ps) != 1 || ps[0] != root {
		t.Errorf("root class parents: got %v, want itself", ps)
	}
}
