package themes

// builtinUtilities maps the semantic utility keys known out of the box to
// their descriptors. Opacity plugins name the core plugin that provides the
// matching opacity variable.
var builtinUtilities = map[string]Utility{
	"backgroundColor":   {Prefix: "bg", Property: "background-color", OpacityVariable: "--bg-opacity", OpacityPlugin: "backgroundOpacity"},
	"borderColor":       {Prefix: "border", Property: "border-color", OpacityVariable: "--border-opacity", OpacityPlugin: "borderOpacity"},
	"divideColor":       {Prefix: "divide", Property: "border-color", Suffix: " > * + *", OpacityVariable: "--divide-opacity", OpacityPlugin: "divideOpacity"},
	"textColor":         {Prefix: "text", Property: "color", OpacityVariable: "--text-opacity", OpacityPlugin: "textOpacity"},
	"placeholderColor":  {Prefix: "placeholder", Property: "color", Suffix: "::placeholder", OpacityVariable: "--placeholder-opacity", OpacityPlugin: "placeholderOpacity"},
	"ringColor":         {Prefix: "ring", Property: "--ring-color", OpacityVariable: "--ring-opacity", OpacityPlugin: "ringOpacity"},
	"gradientFromColor": {Prefix: "from", Property: "--gradient-from-color"},
	"gradientViaColor":  {Prefix: "via", Property: "--gradient-via-color"},
	"gradientToColor":   {Prefix: "to", Property: "--gradient-to-color"},
	"fontFamily":        {Prefix: "font", Property: "font-family"},
	"boxShadow":         {Prefix: "shadow", Property: "box-shadow"},
	"opacity":           {Prefix: "opacity", Property: "opacity"},
	"borderRadius":      {Prefix: "rounded", Property: "border-radius"},
	"fontWeight":        {Prefix: "font", Property: "font-weight"},
}

// utilityTable resolves utility keys to descriptors, custom ones first.
type utilityTable map[string]Utility

func newUtilityTable(custom []NamedUtility) (utilityTable, error) {
	table := make(utilityTable, len(builtinUtilities)+len(custom))
	for k, u := range builtinUtilities {
		table[k] = u
	}
	for _, c := range custom {
		key := "utilities." + c.Key
		if c.Key == "" || c.Prefix == "" || c.Property == "" {
			return nil, configError(CodeUnknownUtility, key,
				`give the utility a "prefix" and a "property"`,
				"utility %q is incomplete", c.Key)
		}
		table[c.Key] = c.Utility
	}
	return table, nil
}

func (t utilityTable) lookup(key string) (Utility, bool) {
	u, ok := t[key]
	if ok && u.ThemeKey == "" {
		u.ThemeKey = key
	}
	return u, ok
}

// className returns the class of a semantic variable: the prefix alone for
// a root DEFAULT, prefix-name otherwise.
func (u Utility) className(variable string) string {
	if variable == DefaultName {
		return u.Prefix
	}
	return u.Prefix + "-" + variable
}
