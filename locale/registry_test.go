package locale

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegistryBuiltins(t *testing.T) {
	var r Registry
	if diff := cmp.Diff([]string{"en", "lt"}, r.List()); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
	if got := r.Default().Name(); got != "en" {
		t.Errorf("Default() = %q, want en", got)
	}
	l, ok := r.Get("")
	if !ok || l.Name() != "en" {
		t.Errorf("Get(\"\") = %v, %v", l, ok)
	}
	if _, ok := r.Get("LT"); !ok {
		t.Error("Get(LT) is case sensitive")
	}
}

func TestRegistryDefineWithParent(t *testing.T) {
	r := NewRegistry()
	child, err := r.Define("en-x-pirate", &Config{
		ParentLocale:   "en",
		LongDateFormat: map[string]*string{"LT": String("HH:mm [arr]")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := child.LongDateFormat("LT"); got != "HH:mm [arr]" {
		t.Errorf("LT = %q", got)
	}
	if got, _ := child.LongDateFormat("LL"); got != "MMMM D, YYYY" {
		t.Errorf("inherited LL = %q", got)
	}
	if got := child.Ordinal(2, "D"); got != "2nd" {
		t.Errorf("inherited Ordinal(2) = %q", got)
	}

	// Updating the parent leaves the already defined child alone.
	if _, err := r.Update("en", &Config{LongDateFormat: map[string]*string{"LL": String("D MMMM YYYY")}}); err != nil {
		t.Fatal(err)
	}
	child, _ = r.Get("en-x-pirate")
	if got, _ := child.LongDateFormat("LL"); got != "MMMM D, YYYY" {
		t.Errorf("child LL after parent update = %q", got)
	}
	en, _ := r.Get("en")
	if got, _ := en.LongDateFormat("LL"); got != "D MMMM YYYY" {
		t.Errorf("parent LL after update = %q", got)
	}
}

func TestRegistryDeferredParent(t *testing.T) {
	r := NewRegistry()
	l, err := r.Define("xx-child", &Config{ParentLocale: "xx", InvalidDate: String("child")})
	if err != nil || l != nil {
		t.Fatalf("Define(deferred) = %v, %v", l, err)
	}
	if _, ok := r.Get("xx-child"); ok {
		t.Fatal("deferred locale is defined before its parent")
	}
	if _, err := r.Define("xx", &Config{Ordinal: String("%d.")}); err != nil {
		t.Fatal(err)
	}
	child, ok := r.Get("xx-child")
	if !ok {
		t.Fatal("deferred locale not defined with its parent")
	}
	if got := child.Ordinal(3, "D"); got != "3." {
		t.Errorf("Ordinal = %q, want inherited %q", got, "3.")
	}
	if got := child.InvalidDate(); got != "child" {
		t.Errorf("InvalidDate = %q", got)
	}
}

func TestRegistryUpdateRevert(t *testing.T) {
	r := NewRegistry()

	if _, err := r.Update("lt", &Config{InvalidDate: String("v2")}); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Update("lt", &Config{InvalidDate: String("v3")}); err != nil {
		t.Fatal(err)
	}
	l, _ := r.Get("lt")
	if got := l.InvalidDate(); got != "v3" {
		t.Errorf("InvalidDate = %q, want v3", got)
	}
	if dow, _ := l.Week(); dow != 1 {
		t.Errorf("update lost week dow, got %d", dow)
	}

	for _, want := range []string{"v2", "Invalid date"} {
		l, err := r.Update("lt", nil)
		if err != nil {
			t.Fatal(err)
		}
		if got := l.InvalidDate(); got != want {
			t.Errorf("after revert InvalidDate = %q, want %q", got, want)
		}
	}

	// Without updates left to undo the locale is removed.
	if l, _ := r.Update("lt", nil); l != nil {
		t.Errorf("Update(nil) with no history = %v, want nil", l)
	}
	if _, ok := r.Get("lt"); ok {
		t.Error("lt still defined")
	}

	// Updating an unknown locale defines it over the base config.
	l, err := r.Update("new", &Config{InvalidDate: String("nope")})
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := l.LongDateFormat("LT"); got != "h:mm A" {
		t.Errorf("LT = %q, want base format", got)
	}
}

func TestRegistryDefineErrors(t *testing.T) {
	r := NewRegistry()
	_, err := r.Define("broken", &Config{
		Months:        List("one"),
		MeridiemParse: String("("),
		Eras:          []EraConfig{{Since: "Infinity"}},
	})
	if err == nil {
		t.Fatal("Define: expected error")
	}
	if _, ok := r.Get("broken"); ok {
		t.Error("broken locale was defined")
	}

	if l, err := r.Define("lt", nil); l != nil || err != nil {
		t.Errorf("Define(lt, nil) = %v, %v", l, err)
	}
	if _, ok := r.Get("lt"); ok {
		t.Error("Define(lt, nil) did not remove lt")
	}
}

func TestRegistryChoose(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Define("en-gb", &Config{ParentLocale: "en"}); err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		names []string
		want  string
	}{
		{[]string{"lt"}, "lt"},
		{[]string{"lt_LT"}, "lt"},
		{[]string{"en-GB"}, "en-gb"},
		{[]string{"en-AU"}, "en"},
		{[]string{"xx", "lt-LT"}, "lt"},
		{[]string{"not a locale"}, "en"},
		{nil, "en"},
	}
	for _, c := range cases {
		if got := r.Choose(c.names...).Name(); got != c.want {
			t.Errorf("Choose(%q) = %q, want %q", c.names, got, c.want)
		}
	}
}

func TestRegistrySetDefault(t *testing.T) {
	r := NewRegistry()
	if got := r.SetDefault("lt-LT"); got != "lt" {
		t.Errorf("SetDefault(lt-LT) = %q, want lt", got)
	}
	if got := r.SetDefault("xx"); got != "lt" {
		t.Errorf("SetDefault(xx) = %q, want unchanged lt", got)
	}
	if got := r.Default().Name(); got != "lt" {
		t.Errorf("Default() = %q", got)
	}

	// Removing the default locale falls back to English.
	r.Define("lt", nil)
	if got := r.Default().Name(); got != "en" {
		t.Errorf("Default() after removal = %q, want en", got)
	}
}

func TestRegistryUpdateUnsetsHook(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Update("lt", &Config{MeridiemHour: func(hour int, _ string) int { return hour + 1 }}); err != nil {
		t.Fatal(err)
	}
	l, _ := r.Get("lt")
	if h, ok := l.MeridiemHour(3, "x"); !ok || h != 4 {
		t.Errorf("MeridiemHour(3) = %d, %v, want 4, true", h, ok)
	}
	l, err := r.Update("lt", (&Config{}).Unset("meridiemHour"))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := l.MeridiemHour(3, "x"); ok {
		t.Error("MeridiemHour hook still set after unset")
	}
}

func TestRegistryDefaultConcurrent(t *testing.T) {
	r := NewRegistry()
	r.SetDefault("lt")
	var wg sync.WaitGroup
	for n := 0; n < 8; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := 0; k < 100; k++ {
				if name := r.Default().Name(); name != "lt" && name != "en" {
					t.Errorf("Default() = %q", name)
					return
				}
			}
		}()
	}
	r.Define("lt", nil)
	wg.Wait()
	if got := r.Default().Name(); got != "en" {
		t.Errorf("Default() after removal = %q, want en", got)
	}
}
