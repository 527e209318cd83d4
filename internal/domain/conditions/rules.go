// Package conditions flags drugs that are risky for a patient's stated health
// conditions. Conditions arrive as lowercase identifiers (hypertension,
// pregnancy, asthma, ulcer, diabetes); drugs match a rule when any of its
// keywords is a substring of the lowered drug name.
package conditions

import "strings"

type rule struct {
	Drugs         []string
	Severity      string
	Color         string
	DescriptionEN string
	DescriptionAR string
}

// Warning is one condition conflict for one drug in the checked list.
type Warning struct {
	Drug          string `json:"drug"`
	Condition     string `json:"condition"`
	Severity      string `json:"severity"`
	Color         string `json:"color"`
	DescriptionEN string `json:"description_en"`
	DescriptionAR string `json:"description_ar"`
}

var conditionRules = map[string][]rule{
	"hypertension": {
		{
			Drugs:         []string{"ibuprofen", "diclofenac", "naproxen", "indomethacin", "celecoxib", "etoricoxib"},
			Severity:      "Moderate",
			Color:         "orange",
			DescriptionEN: "NSAIDs can increase blood pressure and reduce the effect of antihypertensives.",
			DescriptionAR: "المسكنات (NSAIDs) قد ترفع ضغط الدم وتقلل فاعلية أدوية الضغط.",
		},
		{
			Drugs:         []string{"pseudoephedrine", "phenylephrine"},
			Severity:      "Moderate",
			Color:         "orange",
			DescriptionEN: "Decongestants can raise blood pressure. Use cautiously.",
			DescriptionAR: "مضادات الاحتقان قد ترفع ضغط الدم. استخدمها بحذر.",
		},
	},
	"pregnancy": {
		{
			Drugs:         []string{"lisinopril", "enalapril", "ramipril", "captopril", "losartan", "valsartan"},
			Severity:      "Major",
			Color:         "red",
			DescriptionEN: "Contraindicated in pregnancy. Can cause severe fetal harm.",
			DescriptionAR: "ممنوع أثناء الحمل. قد يسبب ضرراً شديداً للجنين.",
		},
		{
			Drugs:         []string{"warfarin"},
			Severity:      "Major",
			Color:         "red",
			DescriptionEN: "Contraindicated. Teratogenic risks.",
			DescriptionAR: "ممنوع. يسبب تشوهات جنينية.",
		},
		{
			Drugs:         []string{"ibuprofen", "aspirin", "naproxen"},
			Severity:      "Moderate",
			Color:         "orange",
			DescriptionEN: "Avoid especially in 3rd trimester. Risks of closing ductus arteriosus.",
			DescriptionAR: "تجنب خاصة في الثلث الأخير. مخاطر على قلب الجنين.",
		},
	},
	"asthma": {
		{
			Drugs:         []string{"propranolol", "carvedilol", "labetalol", "timolol"},
			Severity:      "Major",
			Color:         "red",
			DescriptionEN: "Non-selective beta blockers can trigger bronchospasm/asthma attacks.",
			DescriptionAR: "أدوية 'بيتا' غير الانتقائية قد تسبب نوبة ربو وضيق تنفس.",
		},
		{
			Drugs:         []string{"aspirin"},
			Severity:      "Moderate",
			Color:         "yellow",
			DescriptionEN: "Use caution. Some asthmatics are sensitive to Aspirin.",
			DescriptionAR: "استخدم بحذر. بعض مرضى الربو يتحسسون من الأسبرين.",
		},
	},
	"ulcer": {
		{
			Drugs:         []string{"aspirin", "ibuprofen", "diclofenac", "naproxen", "ketorolac"},
			Severity:      "Major",
			Color:         "red",
			DescriptionEN: "High risk of gastrointestinal bleeding. Avoid if history of ulcers.",
			DescriptionAR: "خطر عالي للنزيف المعوي. تجنب إذا كان لديك تاريخ مع القرحة.",
		},
		{
			Drugs:         []string{"warfarin", "clopidogrel", "rivaroxaban"},
			Severity:      "Major",
			Color:         "red",
			DescriptionEN: "Increases bleeding risk significantly.",
			DescriptionAR: "يزيد خطر النزيف بشكل كبير.",
		},
	},
	"diabetes": {
		{
			Drugs:         []string{"prednisone", "dexamethasone", "hydrocortisone"},
			Severity:      "Moderate",
			Color:         "orange",
			DescriptionEN: "Corticosteroids can significantly raise blood sugar levels.",
			DescriptionAR: "الكورتيزون قد يرفع مستويات السكر في الدم بشكل ملحوظ.",
		},
	},
}

// Check returns a warning per (condition, drug, matching rule). Unknown
// condition identifiers are ignored. Output follows the caller's condition
// order, then drug order, then rule order.
func Check(drugNames, conditionIDs []string) []Warning {
	warnings := []Warning{}
	for _, condition := range conditionIDs {
		rules, ok := conditionRules[strings.ToLower(condition)]
		if !ok {
			continue
		}
		for _, name := range drugNames {
			lowered := strings.ToLower(name)
			for _, r := range rules {
				if !matchesAny(lowered, r.Drugs) {
					continue
				}
				warnings = append(warnings, Warning{
					Drug:          name,
					Condition:     condition,
					Severity:      r.Severity,
					Color:         r.Color,
					DescriptionEN: r.DescriptionEN,
					DescriptionAR: r.DescriptionAR,
				})
			}
		}
	}
	return warnings
}

func matchesAny(loweredName string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(loweredName, keyword) {
			return true
		}
	}
	return false
}
