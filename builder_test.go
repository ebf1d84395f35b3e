package csrt_test

import (
	"testing"

	"github.com/google/uuid"

	csrt "github.com/oarkflow/csrt"
)

func mustBuild[V any](t *testing.T, pairs []csrt.Pair[V]) *csrt.Container[V] {
	t.Helper()
	c, err := csrt.Construct(pairs)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}
	return c
}

func TestConstructSmallMixedSet(t *testing.T) {
	id := uuid.New()
	updateID := uuid.New()
	pairs := []csrt.Pair[any]{
		{Key: csrt.StringKey("ARG_Browse"), Value: "browse"},
		{Key: csrt.StringKey("ARG_Browse_Flags"), Value: "browse-flags"},
		{Key: csrt.StringKey("ARG_Browse_Limit"), Value: "browse-limit"},
		{Key: csrt.StringKey("ARG_Browse_Offset"), Value: "browse-offset"},
		{Key: csrt.StringKey("ARG_Search_Flags"), Value: "search-flags"},
		{Key: csrt.StringKey("System_Id"), Value: id},
		{Key: csrt.StringKey("System_Update_Id"), Value: updateID},
	}
	c := mustBuild(t, pairs)

	if got := c.Len(); got != len(pairs) {
		t.Fatalf("Len() = %d, want %d", got, len(pairs))
	}

	for _, p := range pairs {
		got, err := c.Get(p.Key)
		if err != nil {
			t.Errorf("Get(%q): %v", p.Key.String(), err)
			continue
		}
		if got != p.Value {
			t.Errorf("Get(%q) = %v, want %v", p.Key.String(), got, p.Value)
		}
	}
}

func TestConstructSingleKey(t *testing.T) {
	c := mustBuild(t, []csrt.Pair[int]{
		{Key: csrt.StringKey("hello"), Value: 42},
	})

	got, err := c.GetString("hello")
	if err != nil {
		t.Fatalf("GetString: %v", err)
	}
	if got != 42 {
		t.Errorf("GetString(\"hello\") = %d, want 42", got)
	}
	if c.ContainsString("goodbye") {
		t.Error("ContainsString(\"goodbye\") = true, want false")
	}
}

func TestConstructPrefixOfKeyCoexistence(t *testing.T) {
	c := mustBuild(t, []csrt.Pair[string]{
		{Key: csrt.StringKey("car"), Value: "car-value"},
		{Key: csrt.StringKey("card"), Value: "card-value"},
		{Key: csrt.StringKey("care"), Value: "care-value"},
	})

	for _, key := range []string{"car", "card", "care"} {
		got, err := c.GetString(key)
		if err != nil {
			t.Errorf("GetString(%q): %v", key, err)
			continue
		}
		want := key + "-value"
		if got != want {
			t.Errorf("GetString(%q) = %q, want %q", key, got, want)
		}
	}

	if c.ContainsString("ca") {
		t.Error("ContainsString(\"ca\") = true, want false")
	}
	if c.ContainsString("cars") {
		t.Error("ContainsString(\"cars\") = true, want false")
	}
}

var countryNames = []string{
	"Afghanistan", "Albania", "Algeria", "Andorra", "Angola", "Antigua",
	"Argentina", "Armenia", "Australia", "Austria", "Azerbaijan", "Bahamas",
	"Bahrain", "Bangladesh", "Barbados", "Belarus", "Belgium", "Belize",
	"Benin", "Bhutan", "Bolivia", "Bosnia", "Botswana", "Brazil", "Brunei",
	"Bulgaria", "Burkina", "Burundi", "Cambodia", "Cameroon", "Canada",
	"Chad", "Chile", "China", "Colombia", "Comoros", "Congo", "Croatia",
	"Cuba", "Cyprus", "Czechia", "Denmark", "Djibouti", "Dominica",
	"Ecuador", "Egypt", "Eritrea", "Estonia", "Eswatini", "Ethiopia",
	"Fiji", "Finland", "France", "Gabon", "Gambia", "Georgia", "Germany",
	"Ghana", "Greece", "Grenada", "Guatemala", "Guinea", "Guyana", "Haiti",
	"Honduras", "Hungary", "Iceland", "India", "Indonesia", "Iran", "Iraq",
	"Ireland", "Israel", "Italy", "Jamaica", "Japan", "Jordan", "Kazakhstan",
	"Kenya", "Kiribati", "Kosovo", "Kuwait", "Kyrgyzstan", "Laos", "Latvia",
	"Lebanon", "Lesotho", "Liberia", "Libya", "Liechtenstein", "Lithuania",
	"Luxembourg", "Madagascar", "Malawi", "Malaysia", "Maldives", "Mali",
	"Malta", "Mauritania", "Mauritius", "Mexico", "Micronesia", "Moldova",
	"Monaco", "Mongolia", "Montenegro", "Morocco", "Mozambique", "Myanmar",
	"Namibia", "Nauru", "Nepal", "Netherlands", "Nicaragua", "Niger",
	"Nigeria", "Norway", "Oman", "Pakistan", "Palau", "Panama",
	"Paraguay", "Peru", "Philippines", "Poland", "Portugal", "Qatar",
	"Romania", "Russia", "Rwanda", "Samoa", "Senegal", "Serbia",
	"Seychelles", "Singapore", "Slovakia", "Slovenia", "Somalia",
	"Spain", "SriLanka", "Sudan", "Suriname", "Sweden", "Switzerland",
	"Syria", "Taiwan", "Tajikistan", "Tanzania", "Thailand", "Togo",
	"Tonga", "Tunisia", "Turkey", "Turkmenistan", "Tuvalu", "Uganda",
	"Ukraine", "Uruguay", "Uzbekistan", "Vanuatu", "Venezuela", "Vietnam",
	"Yemen", "Zambia", "Zimbabwe", "Angola2", "Angola3", "Angola4",
	"Algeria2", "Algeria3", "Algeria4", "Argentina2", "Argentina3",
	"Australia2", "Australia3", "Austria2", "Belgium2", "Belgium3",
	"Brazil2", "Canada2", "Chile2", "China2", "Denmark2", "Egypt2",
	"Finland2", "France2", "Germany2", "Greece2", "India2", "Indonesia2",
	"Ireland2", "Israel2", "Italy2", "Japan2", "Kenya2", "Mexico2",
	"Nigeria2", "Norway2", "Pakistan2", "Peru2", "Poland2", "Portugal2",
	"Qatar2", "Russia2", "Spain2", "Sweden2", "Thailand2", "Turkey2",
	"Ukraine2", "Vietnam2", "Yemen2", "Zambia2",
}

func TestConstructSharedPrefixBulk(t *testing.T) {
	if len(countryNames) < 200 {
		t.Fatalf("need at least 200 names, have %d", len(countryNames))
	}
	pairs := make([]csrt.Pair[int], len(countryNames))
	for i, name := range countryNames {
		pairs[i] = csrt.Pair[int]{Key: csrt.StringKey(name), Value: i}
	}
	csrt.SortPairs(pairs)

	c := mustBuild(t, pairs)
	if got := c.Len(); got != len(pairs) {
		t.Fatalf("Len() = %d, want %d", got, len(pairs))
	}
	for _, p := range pairs {
		got, err := c.Get(p.Key)
		if err != nil {
			t.Errorf("Get(%q): %v", p.Key.String(), err)
			continue
		}
		if got != p.Value {
			t.Errorf("Get(%q) = %d, want %d", p.Key.String(), got, p.Value)
		}
	}
}

func TestConstructDuplicateKeyRejected(t *testing.T) {
	_, err := csrt.Construct([]csrt.Pair[int]{
		{Key: csrt.StringKey("a"), Value: 1},
		{Key: csrt.StringKey("a"), Value: 2},
	})
	if err == nil {
		t.Fatal("Construct with duplicate keys succeeded, want ErrDuplicateKey")
	}
}

func TestConstructUnknownKeyBetweenNeighbours(t *testing.T) {
	c := mustBuild(t, []csrt.Pair[int]{
		{Key: csrt.StringKey("apple"), Value: 1},
		{Key: csrt.StringKey("banana"), Value: 2},
	})
	if c.ContainsString("avocado") {
		t.Error("ContainsString(\"avocado\") = true, want false")
	}
	if _, err := c.GetString("avocado"); err == nil {
		t.Error("GetString(\"avocado\") succeeded, want ErrKeyNotFound")
	}
}

func TestConstructRejectsEmptyKey(t *testing.T) {
	_, err := csrt.Construct([]csrt.Pair[int]{
		{Key: csrt.StringKey(""), Value: 1},
	})
	if err == nil {
		t.Fatal("Construct with an empty key succeeded, want ErrEmptyKey")
	}
}

func TestConstructUnsortedDetectedWhenOptedIn(t *testing.T) {
	_, err := csrt.Construct([]csrt.Pair[int]{
		{Key: csrt.StringKey("banana"), Value: 1},
		{Key: csrt.StringKey("apple"), Value: 2},
	}, csrt.WithSortedCheck())
	if err == nil {
		t.Fatal("Construct with unsorted input and WithSortedCheck succeeded, want ErrUnsorted")
	}
}

func TestConstructEmptyContainer(t *testing.T) {
	c := mustBuild(t, []csrt.Pair[int]{})
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if c.ContainsString("anything") {
		t.Error("ContainsString on empty container returned true")
	}
}
