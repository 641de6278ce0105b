package exporter

// ProgressEvent 导出进度事件
type ProgressEvent struct {
	Percent int
	Stage   string
}

func reportProgress(progress func(ProgressEvent), percent int, stage string) {
	if progress == nil {
		return
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	progress(ProgressEvent{
		Percent: percent,
		Stage:   stage,
	})
}

// reportRowProgress 写入行占 5%~95%，每 10% 上报一次
func reportRowProgress(progress func(ProgressEvent), done, total int) {
	if progress == nil || total == 0 {
		return
	}
	prev := 5 + (done-1)*90/total
	cur := 5 + done*90/total
	if done == total || cur/10 != prev/10 {
		reportProgress(progress, cur, "gravando rotas")
	}
}
