package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOcrItems_FencedJSON(t *testing.T) {
	raw := "```json\n" +
		`[
			{"id": 1, "text": "1+1=?", "has_image": false},
			{"id": 2, "text": "看图数一数。", "has_image": true,
			 "image_box": {"ymin": 100, "xmin": 50, "ymax": 300, "xmax": 400}}
		]` + "\n```"

	items := parseOcrItems(raw)
	require.Len(t, items, 2)

	assert.Equal(t, 1, items[0].ID)
	assert.Equal(t, "1+1=?", items[0].Text)
	assert.False(t, items[0].HasImage)
	assert.Nil(t, items[0].ImageBox)

	assert.True(t, items[1].HasImage)
	require.NotNil(t, items[1].ImageBox)
	assert.Equal(t, 100, items[1].ImageBox.Ymin)
	assert.Equal(t, 400, items[1].ImageBox.Xmax)
}

func TestParseOcrItems_SurroundingProse(t *testing.T) {
	raw := `好的，识别结果如下：
[{"id": 1, "text": "口算：3×4="}]
以上就是全部题目。`

	items := parseOcrItems(raw)
	require.Len(t, items, 1)
	assert.Equal(t, "口算：3×4=", items[0].Text)
}

func TestParseOcrItems_SkipsBlankAndRenumbers(t *testing.T) {
	raw := `[
		{"id": 1, "text": "  "},
		{"text": "没有序号的题"},
		{"id": 0, "text": "序号非法的题"}
	]`

	items := parseOcrItems(raw)
	require.Len(t, items, 2)
	// 空文本被丢弃后按出现位置补号
	assert.Equal(t, 2, items[0].ID)
	assert.Equal(t, "没有序号的题", items[0].Text)
	assert.Equal(t, 3, items[1].ID)
}

func TestParseOcrItems_BoxImpliesImage(t *testing.T) {
	raw := `[{"id": 1, "text": "题", "has_image": false,
		"image_box": {"ymin": 0, "xmin": 0, "ymax": 10, "xmax": 10}}]`

	items := parseOcrItems(raw)
	require.Len(t, items, 1)
	assert.True(t, items[0].HasImage)
	require.NotNil(t, items[0].ImageBox)
}

func TestParseOcrItems_Garbage(t *testing.T) {
	assert.Empty(t, parseOcrItems("抱歉，我无法识别这张图片。"))
	assert.Empty(t, parseOcrItems(""))
	assert.Empty(t, parseOcrItems("[not json"))
}

func TestExtractJSONArray_NestedAndStrings(t *testing.T) {
	// 字符串里的方括号不参与配对
	raw := `前言 [{"text": "选项 [A] 或 [B]", "tags": [1, 2]}] 后记`
	arr := extractJSONArray(raw)
	assert.Equal(t, `[{"text": "选项 [A] 或 [B]", "tags": [1, 2]}]`, arr)

	assert.Empty(t, extractJSONArray("没有数组"))
	assert.Empty(t, extractJSONArray(`[{"unclosed": true}`))
}

func TestParseImageBox_SynonymKeys(t *testing.T) {
	box := parseImageBox(map[string]interface{}{
		"top":    float64(10),
		"left":   float64(20),
		"bottom": float64(110),
		"right":  float64(220),
	})
	require.NotNil(t, box)
	assert.Equal(t, ImageBox{Ymin: 10, Xmin: 20, Ymax: 110, Xmax: 220}, *box)

	box = parseImageBox(map[string]interface{}{
		"y_min": "15", "x_min": "25", "y_max": "115", "x_max": "225",
	})
	require.NotNil(t, box)
	assert.Equal(t, 15, box.Ymin)
}

func TestParseImageBox_NormalizesCoordinates(t *testing.T) {
	// 负值截到 0，颠倒的坐标交换回来
	box := parseImageBox(map[string]interface{}{
		"ymin": float64(300), "xmin": float64(-5),
		"ymax": float64(100), "xmax": float64(400),
	})
	require.NotNil(t, box)
	assert.Equal(t, 100, box.Ymin)
	assert.Equal(t, 300, box.Ymax)
	assert.Equal(t, 0, box.Xmin)
}

func TestParseImageBox_Unusable(t *testing.T) {
	assert.Nil(t, parseImageBox(nil))
	assert.Nil(t, parseImageBox("not a map"))
	assert.Nil(t, parseImageBox(map[string]interface{}{"ymin": float64(1)}))
	// 截完区域为空
	assert.Nil(t, parseImageBox(map[string]interface{}{
		"ymin": float64(10), "xmin": float64(10),
		"ymax": float64(10), "xmax": float64(50),
	}))
}
