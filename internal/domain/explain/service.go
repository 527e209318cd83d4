// Package explain generates bilingual narrative explanations for a flagged
// drug pair from a small mechanism-of-action table. The output is educational
// text, not a clinical determination.
package explain

import (
	"fmt"
	"strings"
)

// drugMechanisms maps generic-name keywords to a mechanism-of-action phrase.
var drugMechanisms = map[string]string{
	"aspirin":       "inhibiting Cyclooxygenase (COX) enzymes",
	"warfarin":      "antagonizing Vitamin K recycling in the liver",
	"ibuprofen":     "inhibiting prostaglandin synthesis",
	"lisinopril":    "blocking the Angiotensin-Converting Enzyme (ACE)",
	"sildenafil":    "inhibiting PDE5 and causing vasodilation",
	"nitroglycerin": "releasing nitric oxide to relax blood vessels",
	"atorvastatin":  "inhibiting HMG-CoA reductase",
	"simvastatin":   "inhibiting HMG-CoA reductase",
	"metformin":     "reducing hepatic glucose production",
	"insulin":       "promoting glucose uptake in cells",
	"ciprofloxacin": "inhibiting bacterial DNA gyrase",
	"fluoxetine":    "inhibiting serotonin reuptake (SSRI)",
	"sertraline":    "inhibiting serotonin reuptake (SSRI)",
	"tramadol":      "binding to mu-opioid receptors and inhibiting serotonin reuptake",
}

// arabicMechanisms carries short Arabic renderings of the mechanism phrases.
var arabicMechanisms = map[string]string{
	"inhibiting Cyclooxygenase (COX) enzymes":                          "تثبيط إنزيمات COX",
	"inhibiting prostaglandin synthesis":                               "منع تصنيع البروستاجلاندين",
	"antagonizing Vitamin K recycling in the liver":                    "تضاد فيتامين K في الكبد",
	"blocking the Angiotensin-Converting Enzyme (ACE)":                 "غلق إنزيم الأنجيوتنسين",
	"inhibiting PDE5 and causing vasodilation":                         "توسيع الأوعية الدموية",
	"releasing nitric oxide to relax blood vessels":                    "إطلاق أكسيد النيتريك",
	"inhibiting HMG-CoA reductase":                                     "تثبيط إنزيم الكوليسترول",
	"reducing hepatic glucose production":                              "تقليل إنتاج الجلوكوز في الكبد",
	"promoting glucose uptake in cells":                                "زيادة امتصاص الخلايا للسكر",
	"inhibiting bacterial DNA gyrase":                                  "تثبيط انقسام البكتيريا",
	"inhibiting serotonin reuptake (SSRI)":                             "زيادة السيروتونين في المخ",
	"binding to mu-opioid receptors and inhibiting serotonin reuptake": "التأثير على مستقبلات الألم والسيروتونين",
}

// Explanation is a bilingual narrative for one drug pair.
type Explanation struct {
	TitleEN string `json:"title_en"`
	TitleAR string `json:"title_ar"`
	TextEN  string `json:"text_en"`
	TextAR  string `json:"text_ar"`
}

// Explain builds a narrative from the pair's mechanisms when both are known,
// falls back to a pharmacokinetic-conflict narrative for high severities, and
// otherwise to a generic additive-effect caution.
func Explain(drug1, drug2, severity string) *Explanation {
	mech1 := mechanism(drug1)
	mech2 := mechanism(drug2)

	out := &Explanation{
		TitleEN: "Pharmacological Insight",
		TitleAR: "رؤية صيدلانية",
	}

	switch {
	case mech1 != "" && mech2 != "":
		out.TextEN = fmt.Sprintf(
			"When %s (works by %s) is combined with %s (%s), the physiological balance is disrupted. This combination significantly increases the risk of side effects due to overlapping systemic pathways.",
			drug1, mech1, drug2, mech2)
		out.TextAR = fmt.Sprintf(
			"%s يعمل عن طريق %s، بينما %s يعمل بـ %s. الجمع بينهما يؤدي لتعطيل التوازن الفسيولوجي وزيادة خطر الآثار الجانبية.",
			drug1, arabicMechanism(mech1), drug2, arabicMechanism(mech2))
	case isHighSeverity(severity):
		out.TextEN = fmt.Sprintf(
			"Pharmacokinetic conflict detected. %s may significantly alter the metabolism of %s, likely via the Cytochrome P450 enzyme system, leading to potentially toxic levels.",
			drug1, drug2)
		out.TextAR = fmt.Sprintf(
			"تم رصد تعارض في التمثيل الغذائي. %s قد يغير طريقة تخلص الجسم من %s، غالباً عبر إنزيمات الكبد، مما يؤدي لتراكم الدواء لمستويات خطرة.",
			drug1, drug2)
	default:
		out.TextEN = "These medications may have additive pharmacodynamic effects. Monitor for enhanced side effects such as drowsiness or dizziness."
		out.TextAR = "هذه الأدوية قد تزيد من تأثير بعضها البعض. يجب مراقبة الآثار الجانبية مثل الدوخة أو النعاس."
	}
	return out
}

// mechanism matches table keywords as substrings, so full product names like
// "Warfarin Sodium 5 MG" still resolve.
func mechanism(drugName string) string {
	lowered := strings.ToLower(drugName)
	for keyword, mech := range drugMechanisms {
		if strings.Contains(lowered, keyword) {
			return mech
		}
	}
	return ""
}

func arabicMechanism(mech string) string {
	if ar, ok := arabicMechanisms[mech]; ok {
		return ar
	}
	return "آلية عمل معقدة"
}

func isHighSeverity(severity string) bool {
	switch strings.ToLower(severity) {
	case "major", "high", "severe", "contraindicated":
		return true
	}
	return false
}
