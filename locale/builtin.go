package locale

import (
	"embed"
	"fmt"
	"strconv"
)

//go:embed data/*.yaml
var builtinData embed.FS

// builtinConfig loads one of the embedded configs. The embedded data is
// part of the build, so failing to load it is a bug.
func builtinConfig(name string) *Config {
	b, err := builtinData.ReadFile("data/" + name + ".yaml")
	if err != nil {
		panic(fmt.Sprintf("locale: built-in %q: %v", name, err))
	}
	c, err := ParseConfig(b)
	if err != nil {
		panic(fmt.Sprintf("locale: built-in %q: %v", name, err))
	}
	switch name {
	case "en":
		c.OrdinalFunc = englishOrdinal
	case "lt":
		c.RelativeTimeFuncs = lithuanianRelativeTime()
	}
	return c
}

func englishOrdinal(n int, _ string) string {
	suffix := "th"
	if (n%100)/10 != 1 {
		switch n % 10 {
		case 1, -1:
			suffix = "st"
		case 2, -2:
			suffix = "nd"
		case 3, -3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

// Lithuanian unit forms: nominative, genitive, accusative.
var lithuanianUnits = map[string][3]string{
	"ss": {"sekundė", "sekundžių", "sekundes"},
	"m":  {"minutė", "minutės", "minutę"},
	"mm": {"minutės", "minučių", "minutes"},
	"h":  {"valanda", "valandos", "valandą"},
	"hh": {"valandos", "valandų", "valandas"},
	"d":  {"diena", "dienos", "dieną"},
	"dd": {"dienos", "dienų", "dienas"},
	"w":  {"savaitė", "savaitės", "savaitę"},
	"ww": {"savaitės", "savaičių", "savaites"},
	"M":  {"mėnuo", "mėnesio", "mėnesį"},
	"MM": {"mėnesiai", "mėnesių", "mėnesius"},
	"y":  {"metai", "metų", "metus"},
	"yy": {"metai", "metų", "metus"},
}

func lithuanianRelativeTime() map[string]RelativeTimeFunc {
	funcs := map[string]RelativeTimeFunc{"s": ltSeconds}
	for key := range lithuanianUnits {
		if len(key) == 1 {
			funcs[key] = ltSingular
		} else {
			funcs[key] = ltPlural
		}
	}
	return funcs
}

func ltSeconds(_ int, withoutSuffix bool, _ string, isFuture bool) string {
	switch {
	case withoutSuffix:
		return "kelios sekundės"
	case isFuture:
		return "kelių sekundžių"
	}
	return "kelias sekundes"
}

// ltForms returns the forms of key, falling back to the plural key for
// units without a singular entry.
func ltForms(key string) [3]string {
	if f, ok := lithuanianUnits[key]; ok {
		return f
	}
	return lithuanianUnits[key+key]
}

func ltSingular(_ int, withoutSuffix bool, key string, isFuture bool) string {
	f := ltForms(key)
	switch {
	case withoutSuffix:
		return f[0]
	case isFuture:
		return f[1]
	}
	return f[2]
}

// ltSpecial reports numbers that take the genitive plural.
func ltSpecial(n int) bool {
	return n%10 == 0 || (n > 10 && n < 20)
}

func ltPlural(n int, withoutSuffix bool, key string, isFuture bool) string {
	result := strconv.Itoa(n) + " "
	f := ltForms(key)
	switch {
	case n == 1:
		return result + ltSingular(n, withoutSuffix, key[:1], isFuture)
	case withoutSuffix, !isFuture:
		if ltSpecial(n) {
			return result + f[1]
		}
		if withoutSuffix {
			return result + f[0]
		}
		return result + f[2]
	}
	return result + f[1]
}
