package countdown

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// DefaultLocale 未配置或无法识别时使用的语言
const DefaultLocale = "sk-SK"

// 各语言的月份名称, 顺序与 supportedLocales 一致
var monthNames = [][12]string{
	{"január", "február", "marec", "apríl", "máj", "jún", "júl", "august", "september", "október", "november", "december"},
	{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	{"一月", "二月", "三月", "四月", "五月", "六月", "七月", "八月", "九月", "十月", "十一月", "十二月"},
}

var supportedLocales = []language.Tag{
	language.Slovak,
	language.AmericanEnglish,
	language.SimplifiedChinese,
}

var localeMatcher = language.NewMatcher(supportedLocales)

// MonthNames 返回与 locale 最匹配的月份名称表
func MonthNames(locale string) [12]string {
	tag, err := language.Parse(locale)
	if err != nil {
		return monthNames[0]
	}
	_, index, confidence := localeMatcher.Match(tag)
	if confidence == language.No {
		return monthNames[0]
	}
	return monthNames[index]
}

// FormatDate 格式化为 "17. máj 2025"
func FormatDate(t time.Time, locale string) string {
	names := MonthNames(locale)
	return fmt.Sprintf("%d. %s %d", t.Day(), names[t.Month()-1], t.Year())
}
