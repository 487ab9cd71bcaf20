package device

import "fmt"

// SelectColorMode は高さが minHeight 以上の最初のカラーモードを選択する
// モードID 0（オフ）は選択対象にならない
func SelectColorMode(dev Device, minHeight uint32) (uint32, error) {
	for _, mode := range dev.ColorModes() {
		if mode.ModeID == ModeOff {
			continue
		}
		if mode.Height >= minHeight {
			return mode.ModeID, nil
		}
	}
	return ModeOff, fmt.Errorf("高さ %d 以上のカラーモードが見つかりません", minHeight)
}

// SelectDepthMode は高さが minHeight 以上かつ垂直視野角が maxVerticalFOV 以下の
// 最初の深度モードを選択する。モードID 0（オフ）は選択対象にならない
func SelectDepthMode(dev Device, minHeight uint32, maxVerticalFOV float32) (uint32, error) {
	for _, mode := range dev.DepthModes() {
		if mode.ModeID == ModeOff {
			continue
		}
		if mode.Height >= minHeight && mode.VerticalFOV <= maxVerticalFOV {
			return mode.ModeID, nil
		}
	}
	return ModeOff, fmt.Errorf("高さ %d 以上・垂直視野角 %.1f 以下の深度モードが見つかりません", minHeight, maxVerticalFOV)
}

// SelectMaxFPSMode はフレームレートが最大のFPSモードを選択する
// モードID 0（オフ）は選択対象にならない
func SelectMaxFPSMode(dev Device) (uint32, error) {
	maxFPS := 0
	selected := ModeOff

	for _, mode := range dev.FPSModes() {
		if mode.ModeID == ModeOff {
			continue
		}
		if mode.FPS >= maxFPS {
			maxFPS = mode.FPS
			selected = mode.ModeID
		}
	}

	if selected == ModeOff {
		return ModeOff, fmt.Errorf("利用可能なFPSモードが見つかりません")
	}
	return selected, nil
}

// ValidateConfiguration はカメラ開始前の設定の妥当性を検証する
// FPSモードは必須で、カラーか深度の少なくとも一方が有効であること
func ValidateConfiguration(config *DeviceConfiguration) error {
	if config == nil {
		return fmt.Errorf("設定がnilです")
	}

	if config.FPSModeID == ModeOff {
		return fmt.Errorf("FPSモードIDに0（オフ）は指定できません")
	}

	if config.ColorModeID == ModeOff && config.DepthModeID == ModeOff {
		return fmt.Errorf("カラーモードIDと深度モードIDの少なくとも一方は0（オフ）以外を指定してください")
	}

	return nil
}
