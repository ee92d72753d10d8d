package device

import (
	"github.com/jypelle/vekimeteo/internal/srv/config"
	"github.com/sirupsen/logrus"
	"image"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"
)

func NewDisplay(simulationMode bool, displayParam config.DisplayParam) *Display {
	if !simulationMode {
		if _, err := host.Init(); err != nil {
			logrus.Fatalf("Unable to initialize periph host: %v\n", err)
		}
	}

	device := Display{
		simulationMode: simulationMode,
		width:          displayParam.Width,
		height:         displayParam.Height,
		contrast:       displayParam.Contrast,
		askDone:        make(chan bool),
		askImg:         make(chan image.Image),
		done:           make(chan bool),
	}

	return &device
}

func (d *Display) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.width, d.height)
}

func (d *Display) Start() {
	logrus.Infof("Start display device")

	d.on = true

	if d.simulationMode {
		d.startSimulation()
	} else {
		var err error
		// Open a handle to the first available I²C bus:
		d.i2cBus, err = i2creg.Open("")
		if err != nil {
			logrus.Fatalf("Unable to open i2c bus: %v\n", err)
		}

		opts := ssd1306.DefaultOpts
		opts.W = d.width
		opts.H = d.height
		d.oledDisplay, err = ssd1306.NewI2C(d.i2cBus, &opts)
		if err != nil {
			logrus.Fatalf("Unable to initialize oled display: %v\n", err)
		}

		d.oledDisplay.SetContrast(d.contrast)

		go func() {
			for loop := true; loop; {
				select {
				case <-d.askDone:
					loop = false
				case newImg := <-d.askImg:
					d.oledLock.Lock()
					if err := d.oledDisplay.Draw(d.oledDisplay.Bounds(), newImg, image.Point{}); err != nil {
						logrus.Warnf("Unable to draw on oled display: %v", err)
					}
					d.oledLock.Unlock()
				}
			}
			d.oledLock.Lock()
			d.i2cBus.Close()
			d.oledLock.Unlock()
			d.done <- true
		}()
	}
}

func (d *Display) Stop() {
	logrus.Infof("Stop display device")

	if d.simulationMode {
		d.closeSimulationWindow()
	} else {
		d.askDone <- true
		<-d.done
	}
}

func (d *Display) SetOff() {
	d.lock.Lock()
	defer d.lock.Unlock()
	if !d.on {
		return
	}
	d.on = false
	if !d.simulationMode {
		d.oledLock.Lock()
		d.oledDisplay.Halt()
		d.oledLock.Unlock()
	}
}

func (d *Display) SetOn() {
	d.lock.Lock()
	defer d.lock.Unlock()
	if d.on {
		return
	}
	d.on = true
	if d.simulationMode {
		d.invalidateSimulationWindow()
	} else {
		d.oledLock.Lock()
		d.oledDisplay.SetContrast(d.contrast) // Hack to force display on (calling Draw() is not enough)
		d.oledLock.Unlock()
		if d.lastImg != nil {
			d.askImg <- d.lastImg
		}
	}
}

func (d *Display) IsOn() bool {
	d.lock.RLock()
	defer d.lock.RUnlock()
	return d.on
}

func (d *Display) ShowImage(img image.Image) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.lastImg = img
	if d.on {
		if d.simulationMode {
			d.invalidateSimulationWindow()
		} else {
			d.askImg <- img
		}
	}
}
