package awards

// Screen award registry for the Nichiboku curriculum (N5 up to N1).
// Exact entries pin the screens with agreed point values; pattern
// rules cover whole practice families. Exact always beats pattern,
// earlier pattern beats later.

var defaultExact = map[string]Rule{
	// N5
	"CursoN5Screen":             {Points: 10, Mode: ModeOnEnter, AchievementID: "n5_explorador"},
	"ActividadesN5Screen":       {Points: 10, Mode: ModeOnSuccess, AchievementID: "n5_primer_modulo"},
	"BienvenidaCursoN5_1Screen": {Points: 5, Mode: ModeOnEnter, AchievementID: "n5_bienvenida"},
	"QuizCultural":              {Points: 50, Mode: ModeOnSuccess, AchievementID: "n5_quiz_mapache"},
	"B8EvaluacionesLogrosMenu":  {Points: 50, Mode: ModeOnSuccess, AchievementID: "n5_gamificacion"},

	// N4
	"N4IntroScreen": {Points: 10, Mode: ModeOnEnter, AchievementID: "n4_intro"},
	"CursoN4Screen": {Points: 20, Mode: ModeOnEnter, AchievementID: "n4_zorro_estudioso"},

	// N3, block 1 plus the final exam
	"N3_UnitScreen":               {Points: 30, Mode: ModeOnSuccess, AchievementID: "n3_b1_u1"},
	"N3_Block1_Unit2Screen":       {Points: 25, Mode: ModeOnSuccess, AchievementID: "n3_b1_u2"},
	"N3_Block1_Unit3Screen":       {Points: 25, Mode: ModeOnSuccess, AchievementID: "n3_b1_u3"},
	"N3_Block1_Unit4Screen":       {Points: 30, Mode: ModeOnSuccess, AchievementID: "n3_b1_u4"},
	"N3_Block1_Unit5Screen":       {Points: 35, Mode: ModeOnSuccess, AchievementID: "n3_b1_u5"},
	"N3_B2_U1_Screen":             {Points: 20, Mode: ModeOnSuccess, AchievementID: "n3_b2_u1"},
	"N3_B2_U2_PracticeScreen":     {Points: 25, Mode: ModeOnSuccess, AchievementID: "n3_b2_u2"},
	"N3_B2_U3_PracticeScreen":     {Points: 25, Mode: ModeOnSuccess, AchievementID: "n3_b2_u3"},
	"N3_B2_U4_PracticeScreen":     {Points: 30, Mode: ModeOnSuccess, AchievementID: "n3_b2_u4"},
	"N3_B2_U5_PracticeScreen":     {Points: 35, Mode: ModeOnSuccess, AchievementID: "n3_b2_u5"},
	"N3_B3_U3_PracticeScreen":     {Points: 35, Mode: ModeOnSuccess, AchievementID: "n3_b3_u3"},
	"N3_B4_U20_PracticeScreen":    {Points: 35, Mode: ModeOnSuccess, AchievementID: "n3_b4_u20"},
	"N3_FinalExamScreen":          {Points: 50, Mode: ModeOnSuccess, AchievementID: "n3_exam_leon"},

	// N2, block 1 plus browse
	"N2_B1_U1":       {Points: 25, Mode: ModeOnSuccess, AchievementID: "n2_b1_u1"},
	"N2_B1_U2":       {Points: 30, Mode: ModeOnSuccess, AchievementID: "n2_b1_u2"},
	"N2_B1_U3":       {Points: 35, Mode: ModeOnSuccess, AchievementID: "n2_b1_u3"},
	"N2BrowseScreen": {Points: 5, Mode: ModeOnEnter, AchievementID: "n2_explorador"},

	// N1
	"CursoN1":           {Points: 10, Mode: ModeOnEnter, AchievementID: "n1_inicio"},
	"N1_EconomyScreen":  {Points: 20, Mode: ModeOnSuccess, AchievementID: "n1_economia"},
	"N1GameScreen":      {Points: 100, Mode: ModeOnSuccess, AchievementID: "n1_reflejos"},
	"N1ExamScreen":      {Points: 150, Mode: ModeOnSuccess, AchievementID: "n1_exam"},
	"N1KanjiGameScreen": {Points: 10, Mode: ModeOnSuccess, AchievementID: "n1_kanji_game"},
}

var defaultPatterns = []PatternRule{
	// N3 B3/B4 practice units; exact overrides above pin U3 and U20.
	{Matcher: Unit("N3_B3_U", "_PracticeScreen"), Points: 30, Mode: ModeOnSuccess, AchievementPrefix: "n3_b3"},
	{Matcher: Unit("N3_B4_U", "_PracticeScreen"), Points: 30, Mode: ModeOnSuccess, AchievementPrefix: "n3_b4"},

	// N3 B5 units appear both with and without the practice suffix.
	{Matcher: Unit("N3_B5_U", "_PracticeScreen"), Points: 30, Mode: ModeOnSuccess, AchievementPrefix: "n3_b5"},
	{Matcher: Unit("N3_B5_U", ""), Points: 30, Mode: ModeOnSuccess, AchievementPrefix: "n3_b5"},

	// N3 B6 practice units.
	{Matcher: Unit("N3_B6_U", "_PracticeScreen"), Points: 30, Mode: ModeOnSuccess, AchievementPrefix: "n3_b6"},

	// N2 blocks 2 through 5, one rule per block.
	{Matcher: Unit("N2_B2_U", ""), Points: 25, Mode: ModeOnSuccess, AchievementPrefix: "n2_b"},
	{Matcher: Unit("N2_B3_U", ""), Points: 25, Mode: ModeOnSuccess, AchievementPrefix: "n2_b"},
	{Matcher: Unit("N2_B4_U", ""), Points: 25, Mode: ModeOnSuccess, AchievementPrefix: "n2_b"},
	{Matcher: Unit("N2_B5_U", ""), Points: 25, Mode: ModeOnSuccess, AchievementPrefix: "n2_b"},

	// N5 survival vocabulary screens (B6_Restaurante, B6_Dinero, ...)
	// pay a flat 10 on success; their achievements are granted by the
	// screens themselves.
	{Matcher: Affix("B6_", ""), Points: 10, Mode: ModeOnSuccess},

	// Intro / Browse / Menu / Hub screens pay out on entry.
	{Matcher: ContainsAnyFold("intro", "browse", "menu", "hub"), Points: 5, Mode: ModeOnEnter, AchievementPrefix: "explorer"},
}

// DefaultRuleSet returns the build-time registry used by the app.
func DefaultRuleSet() *RuleSet {
	return NewRuleSet(defaultExact, defaultPatterns)
}
